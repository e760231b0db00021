package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	entitymodels "job-board-backend/models/entity"
)

type Provider interface {
	ExportCandidateList(list []entitymodels.Candidate) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var candidateHeaders = []string{"Nome", "Email", "Telefone", "Vaga", "Status", "Data da candidatura", "Enviado para análise"}

func (i impl) ExportCandidateList(list []entitymodels.Candidate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, candidateHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		row, err = writeCandidateData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Candidatos")
	return f.WriteToBuffer()
}

func writeCandidateData(f *excelize.File, sheet string, list []entitymodels.Candidate, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(candidateHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		sent := "Não"
		if item.SentForAnalysis {
			sent = "Sim"
		}
		values := []interface{}{item.Name, item.Email, item.Phone, item.JobTitle, string(item.Status), item.AppliedAt, sent}
		for col, value := range values {
			if err := writeColumn(f, sheet, col+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
