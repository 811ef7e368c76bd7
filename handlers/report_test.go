package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/models"
)

func TestMonthlyPayrollReport(t *testing.T) {
	ts := newTestServer(t)

	may := time.Date(2026, time.May, 10, 8, 0, 0, 0, time.UTC)
	entries := []struct {
		platoon string
		rank    string
		salary  float64
		at      time.Time
	}{
		{"Horin 1", "Private", 200, may},
		{"Horin 1", "Private", 200, may.Add(48 * time.Hour)},
		{"Horin 2", "Sergeant", 350, may},
		{"Horin 2", "Sergeant", 350, may.AddDate(0, 1, 0)}, // June, excluded
	}
	for i, e := range entries {
		require.NoError(t, ts.verificationRepo.Create(&models.FingerprintVerification{
			ServiceNumber: fmt.Sprintf("CMJ0000%d", i+1),
			FullName:      "Soldier",
			Rank:          e.rank,
			NetSalary:     e.salary,
			Platoon:       e.platoon,
			VerifiedAt:    e.at.Unix(),
		}))
	}

	rec := ts.request(t, http.MethodGet, "/api/reports/payroll?month=5&year=2026", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report database.PayrollReport
	decodeBody(t, rec, &report)
	assert.Equal(t, 5, report.Month)
	assert.Equal(t, 2026, report.Year)
	assert.EqualValues(t, 3, report.TotalVerifications)
	assert.Equal(t, 750.0, report.TotalSalary)
	require.Len(t, report.Groups, 2)
	assert.Equal(t, "Horin 1", report.Groups[0].Platoon)
	assert.Equal(t, 400.0, report.Groups[0].TotalSalary)
}

func TestMonthlyPayrollDefaultsToCurrentMonth(t *testing.T) {
	ts := newTestServer(t)

	require.NoError(t, ts.verificationRepo.Create(&models.FingerprintVerification{
		ServiceNumber: "CMJ00001",
		FullName:      "Soldier",
		Rank:          "Private",
		NetSalary:     200,
		Platoon:       "Horin 1",
		VerifiedAt:    time.Now().UTC().Unix(),
	}))

	rec := ts.request(t, http.MethodGet, "/api/reports/payroll", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report database.PayrollReport
	decodeBody(t, rec, &report)
	now := time.Now().UTC()
	assert.Equal(t, int(now.Month()), report.Month)
	assert.Equal(t, now.Year(), report.Year)
	assert.EqualValues(t, 1, report.TotalVerifications)
	assert.Equal(t, 200.0, report.TotalSalary)
}

func TestMonthlyPayrollRejectsBadParams(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/reports/payroll?month=13", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/reports/payroll?month=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/reports/payroll?year=-4", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
