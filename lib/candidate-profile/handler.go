package candidateprofilehandler

import (
	"context"
	"time"

	"job-board-backend/lib/docstore"
	entitymodels "job-board-backend/models/entity"
)

// Provider resolves the per-user identity record stored separately from
// applications, keyed by the authenticated user's id.
type Provider interface {
	GetByUserID(ctx context.Context, userID string) (*entitymodels.CandidateProfile, error)
	// Resolve returns the user's profile id, creating the record when absent
	// and updating it when name/email/phone changed since last resolution.
	Resolve(ctx context.Context, userID, name, email, phone string) (profileID string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(docstore.Instance)
}

func NewInstance(store docstore.Provider) Provider {
	return &impl{store: store}
}

type impl struct {
	store docstore.Provider
}

func (i *impl) GetByUserID(ctx context.Context, userID string) (*entitymodels.CandidateProfile, error) {
	docs, err := i.store.Query(ctx, docstore.ProfilesCollection, map[string]interface{}{"userId": userID})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	doc := docs[0]
	profile := entitymodels.CandidateProfile{
		ID:     doc.ID,
		UserID: userID,
		Name:   stringValue(doc.Data, "name"),
		Email:  stringValue(doc.Data, "email"),
		Phone:  stringValue(doc.Data, "phone"),
	}
	return &profile, nil
}

func (i *impl) Resolve(ctx context.Context, userID, name, email, phone string) (string, error) {
	profile, err := i.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return i.store.Add(ctx, docstore.ProfilesCollection, map[string]interface{}{
			"userId":    userID,
			"name":      name,
			"email":     email,
			"phone":     phone,
			"createdAt": time.Now(),
		})
	}
	if profile.Name != name || profile.Email != email || profile.Phone != phone {
		err = i.store.Update(ctx, docstore.ProfilesCollection, profile.ID, map[string]interface{}{
			"name":      name,
			"email":     email,
			"phone":     phone,
			"updatedAt": time.Now(),
		})
		if err != nil {
			return "", err
		}
	}
	return profile.ID, nil
}

func stringValue(data map[string]interface{}, key string) string {
	value, _ := data[key].(string)
	return value
}
