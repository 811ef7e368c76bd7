package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/rosterbackend/models"
)

func TestGetMonthlyPayrollQueryShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	windowStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).Unix()
	windowEnd := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC).Unix()

	rows := sqlmock.NewRows([]string{"platoon", "rank", "count", "sum"}).
		AddRow("Horin 10", "Private", 2, 400.0).
		AddRow("Horin 2", "Corporal", 1, 300.0).
		AddRow("Horin 2", "Private", 3, 600.0)

	mock.ExpectQuery("SELECT platoon, (.+) FROM fingerprint_verifications WHERE").
		WithArgs(windowStart, windowEnd).
		WillReturnRows(rows)

	report, err := GetMonthlyPayroll(db, time.March, 2026)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.EqualValues(t, 6, report.TotalVerifications)
	assert.Equal(t, 1300.0, report.TotalSalary)

	// natural platoon ordering: Horin 2 before Horin 10
	require.Len(t, report.Groups, 3)
	assert.Equal(t, "Horin 2", report.Groups[0].Platoon)
	assert.Equal(t, "Corporal", report.Groups[0].Rank)
	assert.Equal(t, "Horin 2", report.Groups[1].Platoon)
	assert.Equal(t, "Horin 10", report.Groups[2].Platoon)

	require.NoError(t, mock.ExpectationsWereMet())
}

func newReportTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "roster_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Soldier{}, &models.FingerprintVerification{}))
	return db
}

func logEntry(t *testing.T, db *gorm.DB, platoon, rank string, salary float64, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.FingerprintVerification{
		ID:            at.Format("20060102150405") + platoon + rank,
		ServiceNumber: "CMJ00001",
		FullName:      "Axmed Warsame",
		Rank:          rank,
		NetSalary:     salary,
		Platoon:       platoon,
		VerifiedAt:    at.Unix(),
	}).Error)
}

func TestGetMonthlyPayrollFiltersByMonth(t *testing.T) {
	db := newReportTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	march := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	logEntry(t, db, "Horin 1", "Private", 200, march)
	logEntry(t, db, "Horin 1", "Private", 200, march.Add(24*time.Hour))
	logEntry(t, db, "Horin 2", "Sergeant", 350, march)
	// outside the window
	logEntry(t, db, "Horin 1", "Private", 200, march.AddDate(0, 1, 0))
	logEntry(t, db, "Horin 1", "Private", 200, march.AddDate(0, -1, 0))

	report, err := GetMonthlyPayroll(sqlDB, time.March, 2026)
	require.NoError(t, err)

	assert.EqualValues(t, 3, report.TotalVerifications)
	assert.Equal(t, 750.0, report.TotalSalary)
	require.Len(t, report.Groups, 2)
	assert.Equal(t, "Horin 1", report.Groups[0].Platoon)
	assert.EqualValues(t, 2, report.Groups[0].Verifications)
	assert.Equal(t, 400.0, report.Groups[0].TotalSalary)
}

func TestGetMonthlyPayrollEmptyMonth(t *testing.T) {
	db := newReportTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	report, err := GetMonthlyPayroll(sqlDB, time.January, 1999)
	require.NoError(t, err)
	assert.Zero(t, report.TotalVerifications)
	assert.Zero(t, report.TotalSalary)
	assert.Empty(t, report.Groups)
}

func TestListRosterTableNaturalPlatoonOrder(t *testing.T) {
	db := newReportTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	mk := func(sn, platoon string) *models.Soldier {
		return &models.Soldier{
			ServiceNumber:  sn,
			FullName:       "Soldier " + sn,
			BirthDate:      "1994-06-01",
			Gender:         "male",
			Rank:           "Private",
			EnlistmentDate: "2020-02-15",
			Platoon:        platoon,
			NetSalary:      200,
			Phone:          "61" + sn,
			BloodGroup:     "A+",
			Status:         models.StatusActive,
		}
	}
	require.NoError(t, db.Create(mk("CMJ00001", "Horin 10")).Error)
	require.NoError(t, db.Create(mk("CMJ00002", "Horin 2")).Error)
	require.NoError(t, db.Create(mk("CMJ00003", "Horin 2")).Error)

	table, err := ListRosterTable(sqlDB)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "Horin 2", table[0].Platoon)
	assert.Equal(t, "CMJ00002", table[0].ServiceNumber)
	assert.Equal(t, "Horin 2", table[1].Platoon)
	assert.Equal(t, "Horin 10", table[2].Platoon)
}
