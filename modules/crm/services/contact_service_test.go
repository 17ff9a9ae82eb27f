package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

func TestContactService_Create_RequiresTenant(t *testing.T) {
	svc := NewContactService(&memContactRepo{}, eventbus.NewEventPublisher(logrus.New()))

	_, err := svc.Create(context.Background(), &contact.CreateDTO{
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.ErrorIs(t, err, composables.ErrNoTenantID)
}
