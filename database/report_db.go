package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/facette/natsort"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// PayrollGroup is one platoon/rank bucket of the monthly payroll report.
type PayrollGroup struct {
	Platoon       string  `json:"platoon"`
	Rank          string  `json:"rank"`
	Verifications int64   `json:"verifications"`
	TotalSalary   float64 `json:"total_salary"`
}

// PayrollReport is the monthly payroll summary computed from the
// fingerprint verification log.
type PayrollReport struct {
	Month              int            `json:"month"`
	Year               int            `json:"year"`
	Groups             []PayrollGroup `json:"groups"`
	TotalVerifications int64          `json:"total_verifications"`
	TotalSalary        float64        `json:"total_salary"`
}

// RosterTableRow is the flat table-view projection of a soldier.
type RosterTableRow struct {
	ServiceNumber string  `json:"service_number"`
	FullName      string  `json:"full_name"`
	Rank          string  `json:"rank"`
	Platoon       string  `json:"platoon"`
	NetSalary     float64 `json:"net_salary"`
	Status        string  `json:"status"`
}

// GetMonthlyPayroll sums net_salary over verification log rows whose
// verified_at falls inside the given month/year (UTC), grouped by platoon
// and rank. Groups come back in natural platoon order so labels like
// "Horin 10" sort after "Horin 2".
func GetMonthlyPayroll(db *sql.DB, month time.Month, year int) (PayrollReport, error) {
	windowStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 1, 0)

	// "rank" is quoted: it is a window-function keyword in SQLite
	queryBuilder := psql.Select("platoon", `"rank"`, "COUNT(*)", "COALESCE(SUM(net_salary), 0)").
		From("fingerprint_verifications").
		Where(sq.GtOrEq{"verified_at": windowStart.Unix()}).
		Where(sq.Lt{"verified_at": windowEnd.Unix()}).
		GroupBy("platoon", `"rank"`).
		OrderBy("platoon ASC", `"rank" ASC`)
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return PayrollReport{}, fmt.Errorf("failed to build SQL for GetMonthlyPayroll: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return PayrollReport{}, fmt.Errorf("failed to execute GetMonthlyPayroll query: %w", err)
	}
	defer rows.Close()

	report := PayrollReport{Month: int(month), Year: year, Groups: []PayrollGroup{}}
	for rows.Next() {
		var g PayrollGroup
		if err := rows.Scan(&g.Platoon, &g.Rank, &g.Verifications, &g.TotalSalary); err != nil {
			log.Printf("Error scanning payroll group row: %v", err)
			continue
		}
		report.Groups = append(report.Groups, g)
		report.TotalVerifications += g.Verifications
		report.TotalSalary += g.TotalSalary
	}
	if err = rows.Err(); err != nil {
		return report, fmt.Errorf("error iterating payroll rows: %w", err)
	}

	sort.SliceStable(report.Groups, func(i, j int) bool {
		if report.Groups[i].Platoon != report.Groups[j].Platoon {
			return natsort.Compare(report.Groups[i].Platoon, report.Groups[j].Platoon)
		}
		return report.Groups[i].Rank < report.Groups[j].Rank
	})

	return report, nil
}

// ListRosterTable returns the table-view projection of all soldiers,
// naturally ordered by platoon label and then service number.
func ListRosterTable(db *sql.DB) ([]RosterTableRow, error) {
	queryBuilder := psql.Select("service_number", "full_name", `"rank"`, "platoon", "net_salary", "status").
		From("soldiers").
		OrderBy("service_number ASC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListRosterTable: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListRosterTable query: %w", err)
	}
	defer rows.Close()

	table := []RosterTableRow{}
	for rows.Next() {
		var row RosterTableRow
		if err := rows.Scan(&row.ServiceNumber, &row.FullName, &row.Rank, &row.Platoon, &row.NetSalary, &row.Status); err != nil {
			log.Printf("Error scanning roster table row: %v", err)
			continue
		}
		table = append(table, row)
	}
	if err = rows.Err(); err != nil {
		return table, fmt.Errorf("error iterating roster table rows: %w", err)
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Platoon != table[j].Platoon {
			return natsort.Compare(table[i].Platoon, table[j].Platoon)
		}
		return table[i].ServiceNumber < table[j].ServiceNumber
	})

	return table, nil
}
