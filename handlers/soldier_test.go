package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/rosterbackend/database"
	"github.com/camden-git/rosterbackend/models"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterSoldierAssignsServiceNumbers(t *testing.T) {
	ts := newTestServer(t)

	for i := 1; i <= 3; i++ {
		rec := ts.request(t, http.MethodPost, "/api/soldiers", soldierPayload(i), nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created models.Soldier
		decodeBody(t, rec, &created)
		assert.Equal(t, fmt.Sprintf("CMJ0000%d", i), created.ServiceNumber)
		assert.Equal(t, models.StatusActive, created.Status)
	}
}

func TestRegisterSoldierValidation(t *testing.T) {
	ts := newTestServer(t)

	missingName := soldierPayload(1)
	missingName["full_name"] = ""
	rec := ts.request(t, http.MethodPost, "/api/soldiers", missingName, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// validation failures use the standardized error body
	var errResp APIErrorResponse
	decodeBody(t, rec, &errResp)
	require.Len(t, errResp.Errors, 1)
	assert.Equal(t, "validation_error", errResp.Errors[0].Code)
	assert.Equal(t, "400", errResp.Errors[0].Status)
	assert.NotEmpty(t, errResp.Errors[0].Detail)

	badBlood := soldierPayload(2)
	badBlood["blood_group"] = "Z+"
	rec = ts.request(t, http.MethodPost, "/api/soldiers", badBlood, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterSoldierDuplicatePhone(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/soldiers", soldierPayload(1), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	dup := soldierPayload(2)
	dup["phone"] = soldierPayload(1)["phone"]
	rec = ts.request(t, http.MethodPost, "/api/soldiers", dup, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body["error"]) // driver message is surfaced
}

func TestGetSoldierNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/soldiers/CMJ04242", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAndDeleteNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPut, "/api/soldiers/CMJ04242", soldierPayload(1), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.request(t, http.MethodDelete, "/api/soldiers/CMJ04242", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSoldierLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/soldiers", soldierPayload(1), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Soldier
	decodeBody(t, rec, &created)

	rec = ts.request(t, http.MethodGet, "/api/soldiers/"+created.ServiceNumber, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	update := soldierPayload(1)
	update["rank"] = "Sergeant"
	update["net_salary"] = 400
	rec = ts.request(t, http.MethodPut, "/api/soldiers/"+created.ServiceNumber, update, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Soldier
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Sergeant", updated.Rank)
	assert.Equal(t, 400.0, updated.NetSalary)

	rec = ts.request(t, http.MethodDelete, "/api/soldiers/"+created.ServiceNumber, nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/soldiers/"+created.ServiceNumber, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchSoldiers(t *testing.T) {
	ts := newTestServer(t)

	p := soldierPayload(1)
	p["full_name"] = "Axmed Warsame"
	rec := ts.request(t, http.MethodPost, "/api/soldiers", p, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/soldiers/search?q=axmed", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []models.Soldier
	decodeBody(t, rec, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Axmed Warsame", results[0].FullName)

	rec = ts.request(t, http.MethodGet, "/api/soldiers/search", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/soldiers/search?q=nobody", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &results)
	assert.Empty(t, results)
}

func TestRosterTable(t *testing.T) {
	ts := newTestServer(t)

	first := soldierPayload(1)
	first["platoon"] = "Horin 10"
	second := soldierPayload(2)
	second["platoon"] = "Horin 2"
	require.Equal(t, http.StatusCreated, ts.request(t, http.MethodPost, "/api/soldiers", first, nil).Code)
	require.Equal(t, http.StatusCreated, ts.request(t, http.MethodPost, "/api/soldiers", second, nil).Code)

	rec := ts.request(t, http.MethodGet, "/api/soldiers/table", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var table []database.RosterTableRow
	decodeBody(t, rec, &table)
	require.Len(t, table, 2)
	assert.Equal(t, "Horin 2", table[0].Platoon)
	assert.Equal(t, "Horin 10", table[1].Platoon)
}
