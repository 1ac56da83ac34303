package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
	"github.com/oksasatya/marketplace-api/internal/domain/repository"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

type ContactService struct {
	Contacts repository.ContactRepository
	Events   *Events
	Logger   *logrus.Logger
}

func NewContactService(contacts repository.ContactRepository, events *Events, logger *logrus.Logger) *ContactService {
	return &ContactService{Contacts: contacts, Events: events, Logger: logger}
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company *string
	Message string
}

func (s *ContactService) Create(ctx context.Context, in ContactInput) (*entity.ContactMessage, error) {
	m := &entity.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   helpers.NormalizeEmail(in.Email),
		Phone:   helpers.NormalizePhone(in.Phone),
		Company: helpers.OptionalTrim(in.Company),
		Message: strings.TrimSpace(in.Message),
		Status:  entity.ContactNew,
	}
	fields := map[string]string{}
	required(fields, "name", m.Name)
	required(fields, "email", m.Email)
	required(fields, "phone", m.Phone)
	required(fields, "message", m.Message)
	if err := validationErr(fields); err != nil {
		return nil, err
	}
	if err := s.Contacts.Create(ctx, m); err != nil {
		return nil, Internal(err)
	}
	s.Events.Emit(ctx, EventContactCreated, map[string]any{"contact_id": m.ID})
	return m, nil
}

// List filters by "new" or "responded"; anything else returns every message.
func (s *ContactService) List(ctx context.Context, id entity.Identity, status string) ([]entity.ContactMessage, error) {
	if err := RequireAdmin(id); err != nil {
		return nil, err
	}
	filter := ""
	switch st := strings.ToLower(strings.TrimSpace(status)); st {
	case entity.ContactNew, entity.ContactResponded:
		filter = st
	}
	items, err := s.Contacts.List(ctx, filter)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

func (s *ContactService) Respond(ctx context.Context, id entity.Identity, contactID, respondedBy string) error {
	if err := RequireAdmin(id); err != nil {
		return err
	}
	cid, err := parseID(contactID, "contact message")
	if err != nil {
		return err
	}
	by := helpers.NormalizeEmail(respondedBy)
	if by == "" {
		return Validation("invalid input", map[string]string{"respondedBy": "is required"})
	}
	if err := s.Contacts.MarkResponded(ctx, cid, by); err != nil {
		return storeErr(err, "contact message")
	}
	return nil
}
