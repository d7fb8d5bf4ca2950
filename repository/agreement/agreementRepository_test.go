package agreement

import (
	"context"
	"testing"
	"time"

	"carrental/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var agreementRows = []string{
	"id", "vehicle_id", "requester_id", "start_date", "end_date",
	"status", "agreement_type", "daily_rate", "notes", "reviewer_id",
	"created_at", "updated_at",
}

func day(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return t
}

func TestInsert_ReturnsGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := New(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO agreements").
		WithArgs(int64(1), int64(10), day("2024-01-10"), day("2024-01-20"),
			model.AgreementPending, model.TypeRental, 150.0, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), day("2024-01-01"), day("2024-01-01")))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	a := &model.Agreement{
		VehicleID:   1,
		RequesterID: 10,
		StartDate:   day("2024-01-10"),
		EndDate:     day("2024-01-20"),
		Status:      model.AgreementPending,
		Type:        model.TypeRental,
		DailyRate:   150,
	}
	require.NoError(t, repo.Insert(ctx, tx, a))
	require.Equal(t, int64(7), a.ID)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate_LocksRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := New(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT(.|\n)+FROM agreements(.|\n)+FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(agreementRows).AddRow(
			int64(7), int64(1), int64(10), day("2024-01-10"), day("2024-01-20"),
			"PENDING", "RENTAL", 150.0, nil, nil,
			day("2024-01-01"), day("2024-01-01")))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	a, err := repo.GetForUpdate(ctx, tx, 7)
	require.NoError(t, err)
	require.Equal(t, model.AgreementPending, a.Status)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveForVehicle_FiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := New(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, start_date, end_date(.|\n)+status = 'ACTIVE'").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date"}).
			AddRow(int64(3), day("2024-01-10"), day("2024-01-20")).
			AddRow(int64(5), day("2024-03-01"), day("2024-03-05")))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	periods, err := repo.ActiveForVehicle(ctx, tx, 1)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	require.Equal(t, int64(3), periods[0].ID)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOverdue_PassesReferenceDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := New(db)
	today := day("2024-06-01")

	mock.ExpectQuery("end_date < \\$1").
		WithArgs(today).
		WillReturnRows(sqlmock.NewRows(agreementRows))

	rows, err := repo.ListOverdue(context.Background(), today)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}
