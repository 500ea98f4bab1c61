package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mars-colony-api/internal/dto"
	"github.com/yukikurage/mars-colony-api/internal/membership"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/services"
)

type reportFixture struct {
	env     testEnv
	handler *ReportHandler
	captain *models.Colonist
	emma    *models.Colonist
}

func setupReportFixture(t *testing.T) reportFixture {
	env := setupTestEnv(t)
	captain := env.createColonist(t, "Ridley", "scott_chief@mars.org", 21, "module_1")
	emma := env.createColonist(t, "Emma", "emma.watson@mars.org", 30, "module_1")
	env.createColonist(t, "Ilya", "ilya.kovacs@mars.org", 17, "module_1")
	env.createColonist(t, "Anna", "anna.lee@mars.org", 19, "module_2")
	return reportFixture{env: env, handler: NewReportHandler(env.reports), captain: captain, emma: emma}
}

func (f reportFixture) run(t *testing.T, task, query string, userID uint64) map[string]json.RawMessage {
	t.Helper()
	c, w := f.env.createAuthContext(http.MethodGet, "/api/reports/"+task+query, nil, userID)
	c.Params = gin.Params{{Key: "task", Value: task}}
	f.handler.RunReport(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestReportHandler_ModuleResidents(t *testing.T) {
	f := setupReportFixture(t)

	body := f.run(t, "1", "", f.emma.ID)
	var colonists []dto.ColonistDTO
	require.NoError(t, json.Unmarshal(body["colonists"], &colonists))
	require.Len(t, colonists, 3)

	body = f.run(t, "1", "?module=module_2", f.emma.ID)
	require.NoError(t, json.Unmarshal(body["colonists"], &colonists))
	require.Len(t, colonists, 1)
}

func TestReportHandler_MinorsAndCustomAge(t *testing.T) {
	f := setupReportFixture(t)

	body := f.run(t, "3", "", f.emma.ID)
	var rows []dto.AgedColonistDTO
	require.NoError(t, json.Unmarshal(body["colonists"], &rows))
	require.Len(t, rows, 1)
	require.Equal(t, 17, rows[0].Age)

	body = f.run(t, "3", "?age=20", f.emma.ID)
	require.NoError(t, json.Unmarshal(body["colonists"], &rows))
	require.Len(t, rows, 2)
}

func TestReportHandler_LargestTeams(t *testing.T) {
	f := setupReportFixture(t)
	_, err := f.env.jobs.CreateJob(services.CreateJobInput{
		TeamLeaderID:  f.captain.ID,
		Description:   "deployment of residential modules 1 and 2",
		Collaborators: membership.FromIDs([]uint64{2, 3}),
	})
	require.NoError(t, err)

	c, w := f.env.createAuthContext(http.MethodGet, "/api/reports/6", nil, f.emma.ID)
	c.Params = gin.Params{{Key: "task", Value: "6"}}
	f.handler.RunReport(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.LargestTeamsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 2, response.TeamSize)
	require.Len(t, response.Jobs, 1)
	require.Equal(t, "Ridley", response.Jobs[0].LeaderName)
}

func TestReportHandler_UnknownTaskAndBadParam(t *testing.T) {
	f := setupReportFixture(t)

	c, w := f.env.createAuthContext(http.MethodGet, "/api/reports/9", nil, f.emma.ID)
	c.Params = gin.Params{{Key: "task", Value: "9"}}
	f.handler.RunReport(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	c, w = f.env.createAuthContext(http.MethodGet, "/api/reports/5?hours=many", nil, f.emma.ID)
	c.Params = gin.Params{{Key: "task", Value: "5"}}
	f.handler.RunReport(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_DepartmentHoursNotFound(t *testing.T) {
	f := setupReportFixture(t)

	body := f.run(t, "8", "", f.emma.ID)
	require.JSONEq(t, `"department not found"`, string(body["outcome"]))
}

func TestReportHandler_Relocate(t *testing.T) {
	f := setupReportFixture(t)

	// Preview does not change anything
	c, w := f.env.createAuthContext(http.MethodGet, "/api/reports/7", nil, f.captain.ID)
	c.Params = gin.Params{{Key: "task", Value: "7"}}
	f.handler.RunReport(c)
	require.Equal(t, http.StatusOK, w.Code)
	var preview dto.RelocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	require.False(t, preview.Confirmed)
	require.Len(t, preview.Candidates, 1)

	// Non-privileged colonists may not relocate
	c, w = f.env.createAuthContext(http.MethodPost, "/api/reports/relocate", []byte(`{"confirm":true}`), f.emma.ID)
	f.handler.Relocate(c)
	require.Equal(t, http.StatusForbidden, w.Code)

	c, w = f.env.createAuthContext(http.MethodPost, "/api/reports/relocate", []byte(`{"confirm":true}`), f.captain.ID)
	f.handler.Relocate(c)
	require.Equal(t, http.StatusOK, w.Code)
	var result dto.RelocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.True(t, result.Confirmed)
	require.Equal(t, 1, result.Changed)
	require.Len(t, result.Transitions, 1)
	require.Equal(t, "module_3", result.Transitions[0].To)

	c, w = f.env.createAuthContext(http.MethodPost, "/api/reports/relocate", []byte(`{"from":"module_1","to":"module_1"}`), f.captain.ID)
	f.handler.Relocate(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
