package wsmodels

const (
	EventJobsUpdated       = "jobs_updated"
	EventCandidatesUpdated = "candidates_updated"
)

type ServerMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
