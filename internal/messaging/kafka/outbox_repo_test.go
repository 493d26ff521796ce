package kafka

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEvent() OutboxEvent {
	return OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "attendance",
		AggregateID:   uuid.NewString(),
		EventType:     "attendance_marked",
		Topic:         "attendance.marked.v1",
		Payload:       []byte(`{"action":"IN"}`),
		Status:        OutboxStatusPending,
	}
}

func TestOutboxRepository_CreateInsideTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event := pendingEvent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOutboxRepository(db)
	require.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.NewString()
	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	require.NoError(t, repo.MarkSent(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, ValidateOutboxEvent(pendingEvent()))

	missingID := pendingEvent()
	missingID.ID = ""
	assert.Error(t, ValidateOutboxEvent(missingID))

	missingTopic := pendingEvent()
	missingTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(missingTopic))

	emptyPayload := pendingEvent()
	emptyPayload.Payload = nil
	assert.Error(t, ValidateOutboxEvent(emptyPayload))

	badStatus := pendingEvent()
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))
}
