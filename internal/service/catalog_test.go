package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nhatro-labs/booking-engine/internal/domain"
	"github.com/nhatro-labs/booking-engine/tests/mocks"
)

func TestSnapshot_BackfillsLegacyInternetGroup(t *testing.T) {
	mockRepo := &mocks.MockServiceRepository{}
	catalog := NewCatalogService(mockRepo, nil, time.Minute)

	mockRepo.On("ListActive", mock.Anything).Return([]domain.Service{
		{ID: uuid.New(), Name: "Internet 2", Active: true},
		{ID: uuid.New(), Name: "internet 3", Active: true},
		{ID: uuid.New(), Name: "Điện", Active: true},
		{ID: uuid.New(), Name: "Cáp Internet", Active: true}, // prefix only, not a substring match
	}, nil)

	services, err := catalog.Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.ExclusivityGroupInternet, services[0].ExclusivityGroup)
	assert.Equal(t, domain.ExclusivityGroupInternet, services[1].ExclusivityGroup)
	assert.Empty(t, services[2].ExclusivityGroup)
	assert.Empty(t, services[3].ExclusivityGroup)
}

func TestSnapshot_PreservesDeclaredGroup(t *testing.T) {
	mockRepo := &mocks.MockServiceRepository{}
	catalog := NewCatalogService(mockRepo, nil, time.Minute)

	mockRepo.On("ListActive", mock.Anything).Return([]domain.Service{
		{ID: uuid.New(), Name: "Truyền hình cáp", ExclusivityGroup: "tv", Active: true},
	}, nil)

	services, err := catalog.Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "tv", services[0].ExclusivityGroup)
}
