package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mars-colony-api/internal/constants"
	"github.com/yukikurage/mars-colony-api/internal/dto"
	apierrors "github.com/yukikurage/mars-colony-api/internal/errors"
	"github.com/yukikurage/mars-colony-api/internal/reports"
	"github.com/yukikurage/mars-colony-api/internal/services"
)

// ReportHandler serves the colony reports.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RunReport runs report :task (1-8). Query parameters override the default
// report arguments. Task 7 only previews the relocation.
func (h *ReportHandler) RunReport(c *gin.Context) {
	task := c.Param("task")

	switch task {
	case "1":
		colonists, err := h.reportService.ColonistsInModule(c.DefaultQuery("module", constants.DefaultModule))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"colonists": dto.ToColonistDTOs(colonists)})

	case "2":
		ids, err := h.reportService.IDsWithoutKeyword(
			c.DefaultQuery("module", constants.DefaultModule),
			c.DefaultQuery("keyword", constants.DefaultExcludedKeyword),
		)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": ids})

	case "3":
		age, ok := intQuery(c, "age", constants.MinorAgeThreshold)
		if !ok {
			return
		}
		rows, err := h.reportService.ColonistsYoungerThan(age)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"colonists": dto.ToAgedColonistDTOs(rows)})

	case "4":
		keywords := constants.PositionKeywords
		if raw, ok := c.GetQuery("keywords"); ok {
			keywords = splitKeywords(raw)
		}
		colonists, err := h.reportService.ColonistsWithPositionKeywords(keywords...)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"colonists": dto.ToColonistDTOs(colonists)})

	case "5":
		hours, ok := intQuery(c, "hours", constants.ShortJobHours)
		if !ok {
			return
		}
		jobs, err := h.reportService.ShortUnfinishedJobs(hours)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": dto.ToJobDTOs(jobs)})

	case "6":
		rows, size, err := h.reportService.LargestTeams()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToLargestTeamsResponse(rows, size))

	case "7":
		actor, ok := currentActor(c)
		if !ok {
			return
		}
		req, ok := relocationRequest(c)
		if !ok {
			return
		}
		result, err := h.reportService.Relocate(actor, req, reports.Confirmed(false))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToRelocationResponse(result))

	case "8":
		minHours, ok := intQuery(c, "min_hours", constants.DepartmentMinHours)
		if !ok {
			return
		}
		keywords := constants.GeologicalDepartmentKeywords
		if raw, ok := c.GetQuery("title"); ok {
			keywords = splitKeywords(raw)
		}
		result, err := h.reportService.DepartmentHours(reports.HoursQuery{TitleKeywords: keywords, MinHours: minHours})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToDepartmentHoursResponse(result))

	default:
		apierrors.NotFound(c, "Unknown report "+strconv.Quote(task))
	}
}

// Relocate moves young colonists between modules. Nothing is written unless
// the body sets confirm to true.
func (h *ReportHandler) Relocate(c *gin.Context) {
	type RelocateRequest struct {
		FromModule *string `json:"from"`
		ToModule   *string `json:"to"`
		MaxAge     *int    `json:"max_age"`
		Confirm    bool    `json:"confirm"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var body RelocateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	req := reports.RelocationRequest{
		FromModule: constants.RelocationSourceModule,
		ToModule:   constants.RelocationTargetModule,
		MaxAge:     constants.RelocationMaxAge,
	}
	if body.FromModule != nil {
		req.FromModule = *body.FromModule
	}
	if body.ToModule != nil {
		req.ToModule = *body.ToModule
	}
	if body.MaxAge != nil {
		req.MaxAge = *body.MaxAge
	}
	if req.FromModule == req.ToModule {
		apierrors.BadRequest(c, "Source and target module must differ")
		return
	}

	result, err := h.reportService.Relocate(actor, req, reports.Confirmed(body.Confirm))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRelocationResponse(result))
}

func relocationRequest(c *gin.Context) (reports.RelocationRequest, bool) {
	maxAge, ok := intQuery(c, "max_age", constants.RelocationMaxAge)
	if !ok {
		return reports.RelocationRequest{}, false
	}
	req := reports.RelocationRequest{
		FromModule: c.DefaultQuery("from", constants.RelocationSourceModule),
		ToModule:   c.DefaultQuery("to", constants.RelocationTargetModule),
		MaxAge:     maxAge,
	}
	if req.FromModule == req.ToModule {
		apierrors.BadRequest(c, "Source and target module must differ")
		return reports.RelocationRequest{}, false
	}
	return req, true
}

func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+key)
		return 0, false
	}
	return v, true
}

func splitKeywords(raw string) []string {
	var out []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
