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

const retiredInsertSQL = `INSERT INTO retired_personnel (service_id, name, date_of_birth, rank, regiment, retirement_date, pension, awards, skills) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func TestRetiredCreate_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRetiredRepository(db)

	p := models.RetiredPersonnel{
		ServiceID:      "RT000001",
		Name:           "A. Novak",
		DateOfBirth:    "1955-02-20",
		Rank:           "Colonel",
		RetirementDate: "2015-08-31",
		Pension:        32000,
	}
	mock.ExpectExec(regexp.QuoteMeta(retiredInsertSQL)).
		WithArgs(p.ServiceID, p.Name, p.DateOfBirth, p.Rank, nil,
			p.RetirementDate, p.Pension, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRetiredCreate_NonPositivePension(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRetiredRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(retiredInsertSQL)).
		WillReturnError(&pq.Error{Code: "23514"})

	err = repo.Create(context.Background(), models.RetiredPersonnel{
		ServiceID: "RT000002", Name: "B. Osei", DateOfBirth: "1950-01-02",
		Rank: "Major", RetirementDate: "2010-01-01", Pension: 0,
	})
	if !errors.Is(err, store.ErrCheck) {
		t.Errorf("expected ErrCheck, got %v", err)
	}
}
