package dto

import "github.com/yukikurage/mars-colony-api/internal/reports"

// AgedColonistDTO is a colonist with the age a report filtered on
type AgedColonistDTO struct {
	Colonist ColonistSummaryDTO `json:"colonist"`
	Age      int                `json:"age"`
}

// TeamReportDTO is one row of the largest teams report
type TeamReportDTO struct {
	JobID       uint64 `json:"job_id"`
	Job         string `json:"job"`
	TeamSize    int    `json:"team_size"`
	LeaderName  string `json:"leader_name"`
	LeaderFound bool   `json:"leader_found"`
}

// LargestTeamsResponse is the largest teams report
type LargestTeamsResponse struct {
	TeamSize int             `json:"team_size"`
	Jobs     []TeamReportDTO `json:"jobs"`
}

// TransitionDTO is one relocated colonist
type TransitionDTO struct {
	ColonistID uint64 `json:"colonist_id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// RelocationResponse reports a relocation run
type RelocationResponse struct {
	Confirmed   bool                 `json:"confirmed"`
	Candidates  []ColonistSummaryDTO `json:"candidates"`
	BeforeCount int                  `json:"before_count"`
	AfterCount  int                  `json:"after_count"`
	Changed     int                  `json:"changed"`
	Transitions []TransitionDTO      `json:"transitions"`
}

// MemberHoursDTO is a department member with their finished hours
type MemberHoursDTO struct {
	Colonist ColonistSummaryDTO `json:"colonist"`
	Hours    int64              `json:"hours"`
}

// DepartmentHoursResponse is the department hours report
type DepartmentHoursResponse struct {
	Outcome    string           `json:"outcome"`
	Department *DepartmentDTO   `json:"department,omitempty"`
	MemberIDs  []uint64         `json:"member_ids"`
	Members    []MemberHoursDTO `json:"members"`
}

// ToAgedColonistDTOs converts report rows
func ToAgedColonistDTOs(rows []reports.AgedColonist) []AgedColonistDTO {
	result := make([]AgedColonistDTO, len(rows))
	for i, r := range rows {
		result[i] = AgedColonistDTO{Colonist: ToColonistSummaryDTO(r.Colonist), Age: r.Age}
	}
	return result
}

// ToLargestTeamsResponse converts the largest teams report
func ToLargestTeamsResponse(rows []reports.TeamReport, size int) LargestTeamsResponse {
	jobs := make([]TeamReportDTO, len(rows))
	for i, r := range rows {
		jobs[i] = TeamReportDTO{
			JobID:       r.Job.ID,
			Job:         r.Job.Description,
			TeamSize:    r.TeamSize,
			LeaderName:  r.LeaderName,
			LeaderFound: r.LeaderFound,
		}
	}
	return LargestTeamsResponse{TeamSize: size, Jobs: jobs}
}

// ToRelocationResponse converts a relocation result
func ToRelocationResponse(result *reports.RelocationResult) RelocationResponse {
	candidates := make([]ColonistSummaryDTO, len(result.Candidates))
	for i, c := range result.Candidates {
		candidates[i] = ToColonistSummaryDTO(c)
	}
	transitions := make([]TransitionDTO, len(result.Transitions))
	for i, t := range result.Transitions {
		transitions[i] = TransitionDTO{
			ColonistID: t.ColonistID,
			Name:       t.Name,
			Age:        t.Age,
			From:       t.From,
			To:         t.To,
		}
	}
	return RelocationResponse{
		Confirmed:   result.Confirmed,
		Candidates:  candidates,
		BeforeCount: result.BeforeCount,
		AfterCount:  result.AfterCount,
		Changed:     result.Changed(),
		Transitions: transitions,
	}
}

// ToDepartmentHoursResponse converts the department hours report
func ToDepartmentHoursResponse(result *reports.DepartmentHoursResult) DepartmentHoursResponse {
	resp := DepartmentHoursResponse{
		Outcome:   result.Outcome.String(),
		MemberIDs: append([]uint64{}, result.MemberIDs...),
		Members:   make([]MemberHoursDTO, len(result.Members)),
	}
	if result.Department != nil {
		d := ToDepartmentDTO(*result.Department)
		resp.Department = &d
	}
	for i, m := range result.Members {
		resp.Members[i] = MemberHoursDTO{Colonist: ToColonistSummaryDTO(m.Colonist), Hours: m.Hours}
	}
	return resp
}
