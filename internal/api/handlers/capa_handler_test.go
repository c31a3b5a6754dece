package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsight/regsight-core/internal/models"
)

const validCAPABody = `{
	"rpiId": "5",
	"rootCause": "Insufficient trained inspectors available during the quarter",
	"actionPlan": "Recruit and train three additional GMP inspectors",
	"owner": "Director DER",
	"dueDate": "2099-12-31"
}`

func TestListCAPAs(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.get("/api/v1/capas")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CAPAListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestListCAPAs_Filters(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.get("/api/v1/capas?status=Open")
	var resp models.CAPAListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "c1", resp.CAPAs[0].ID)

	w = env.get("/api/v1/capas?status=All")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)

	w = env.get("/api/v1/capas?q=backlog")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "c2", resp.CAPAs[0].ID)
}

func TestCreateCAPA(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/capas", validCAPABody)
	require.Equal(t, http.StatusCreated, w.Code)

	var record models.CAPA
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, models.CAPAOpen, record.Status)
	assert.Equal(t, "5", record.RPIID)

	// Register now holds three records.
	assert.Equal(t, 3, env.capaStore.Len())
}

func TestCreateCAPA_ValidationFailure(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/capas", `{"rpiId":"","rootCause":"x","actionPlan":"y","owner":"","dueDate":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Status string            `json:"status"`
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Equal(t, "Indicator selection is required.", resp.Fields["rpiId"])
	assert.Equal(t, "Root cause analysis is too short.", resp.Fields["rootCause"])
	assert.Equal(t, "Action plan is too short.", resp.Fields["actionPlan"])
	assert.Equal(t, "Owner is required.", resp.Fields["owner"])
	assert.Equal(t, "Due date is required.", resp.Fields["dueDate"])

	// Nothing written.
	assert.Equal(t, 2, env.capaStore.Len())
}

func TestCreateCAPA_BadBody(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/capas", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCAPA(t *testing.T) {
	env := newTestEnv(t, nil)

	body := `{
		"rpiId": "5",
		"rootCause": "Insufficient trained inspectors available during the quarter",
		"actionPlan": "Recruit and train three additional GMP inspectors",
		"owner": "Director DER",
		"dueDate": "2099-12-31",
		"status": "Resolved"
	}`
	w := env.do(http.MethodPut, "/api/v1/capas/c1", body)
	require.Equal(t, http.StatusOK, w.Code)

	var record models.CAPA
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "c1", record.ID)
	assert.Equal(t, models.CAPAResolved, record.Status)
}

func TestUpdateCAPA_NotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	body := `{
		"rpiId": "5",
		"rootCause": "Insufficient trained inspectors available during the quarter",
		"actionPlan": "Recruit and train three additional GMP inspectors",
		"owner": "Director DER",
		"dueDate": "2099-12-31",
		"status": "Open"
	}`
	w := env.do(http.MethodPut, "/api/v1/capas/ghost", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "capa_not_found")
}

func TestUpdateCAPA_ValidationFailure(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPut, "/api/v1/capas/c1", `{"rpiId":"5","rootCause":"short","actionPlan":"also short ok","owner":"x","dueDate":"2099-01-01","status":"Open"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Root cause analysis is too short.")
}

func TestDeleteCAPA_Idempotent(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodDelete, "/api/v1/capas/c1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, env.capaStore.Len())

	// Deleting again, or deleting an unknown id, still succeeds.
	w = env.do(http.MethodDelete, "/api/v1/capas/c1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(http.MethodDelete, "/api/v1/capas/never-existed", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, env.capaStore.Len())
}

func TestCAPARoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/capas", validCAPABody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.CAPA
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.get("/api/v1/rpis/5/capas")
	require.Equal(t, http.StatusOK, w.Code)
	var listed models.CAPAListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 2, listed.Total)
}
