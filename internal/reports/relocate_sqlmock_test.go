package reports

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRelocate_RollsBackWhenAnUpdateFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "age", "address", "email"}).
		AddRow(1, "ilya", 17, "module_1", "ilya@mars.org").
		AddRow(2, "anna", 20, "module_1", "anna@mars.org")
	mock.ExpectQuery(`SELECT \* FROM "colonists"`).WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "colonists"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "colonists"`).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	result, err := Relocate(db, relocation, Confirmed(true))
	require.Error(t, err)
	require.Nil(t, result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelocate_NotConfirmedIssuesNoWrites(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "age", "address", "email"}).
		AddRow(1, "ilya", 17, "module_1", "ilya@mars.org")
	mock.ExpectQuery(`SELECT \* FROM "colonists"`).WillReturnRows(rows)

	result, err := Relocate(db, relocation, Confirmed(false))
	require.NoError(t, err)
	require.Equal(t, 1, result.BeforeCount)
	require.Zero(t, result.Changed())
	require.NoError(t, mock.ExpectationsWereMet())
}
