package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/milrecord/milrecord/internal/models"
	"github.com/milrecord/milrecord/internal/store"
)

func setupLogisticsMock(t *testing.T) (*PostgresLogisticsRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresLogisticsRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

const logisticsInsertSQL = `INSERT INTO logistics (equipment_id, category, cost, procured, technology, location, assigned_to) VALUES ($1, $2, $3, $4, $5, $6, $7)`

func TestLogisticsCreate_Success(t *testing.T) {
	repo, mock, cleanup := setupLogisticsMock(t)
	defer cleanup()

	owner := "SP000001"
	l := models.Logistics{
		EquipmentID: "EQ000001",
		Category:    "artillery",
		Cost:        250000,
		Procured:    "2020-09-01",
		AssignedTo:  &owner,
	}
	mock.ExpectExec(regexp.QuoteMeta(logisticsInsertSQL)).
		WithArgs(l.EquipmentID, l.Category, l.Cost, l.Procured, nil, nil, &owner).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), l); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestLogisticsCreate_UnknownAssignee(t *testing.T) {
	repo, mock, cleanup := setupLogisticsMock(t)
	defer cleanup()

	owner := "SP999999"
	l := models.Logistics{
		EquipmentID: "EQ000002",
		Category:    "jets",
		Cost:        90000000,
		Procured:    "2021-01-15",
		AssignedTo:  &owner,
	}
	mock.ExpectExec(regexp.QuoteMeta(logisticsInsertSQL)).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Create(context.Background(), l)
	if !errors.Is(err, store.ErrForeignKey) {
		t.Errorf("expected ErrForeignKey, got %v", err)
	}
}

func TestLogisticsCreate_NonPositiveCost(t *testing.T) {
	repo, mock, cleanup := setupLogisticsMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(logisticsInsertSQL)).
		WillReturnError(&pq.Error{Code: "23514"})

	err := repo.Create(context.Background(), models.Logistics{
		EquipmentID: "EQ000003", Category: "ships", Cost: 0, Procured: "2019-03-01",
	})
	if !errors.Is(err, store.ErrCheck) {
		t.Errorf("expected ErrCheck, got %v", err)
	}
}

func TestLogisticsDelete_Success(t *testing.T) {
	repo, mock, cleanup := setupLogisticsMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM logistics WHERE equipment_id = $1`)).
		WithArgs("EQ000001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "EQ000001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogisticsList(t *testing.T) {
	repo, mock, cleanup := setupLogisticsMock(t)
	defer cleanup()

	cols := []string{"equipment_id", "category", "cost", "procured", "technology", "location", "assigned_to"}
	mock.ExpectQuery("SELECT .+ FROM logistics ORDER BY equipment_id").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("EQ000001", "artillery", 250000.0, "2020-09-01", nil, nil, "SP000001").
			AddRow("EQ000002", "jets", 90000000.0, "2021-01-15", nil, nil, nil))

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].AssignedTo == nil || *records[0].AssignedTo != "SP000001" {
		t.Errorf("expected first record assigned to SP000001, got %+v", records[0].AssignedTo)
	}
	if records[1].AssignedTo != nil {
		t.Errorf("expected second record unassigned, got %+v", records[1].AssignedTo)
	}
}
