package cli

import (
	"fmt"
	"strings"

	"github.com/yukikurage/mars-colony-api/internal/constants"
	"github.com/yukikurage/mars-colony-api/internal/membership"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/reports"
	"github.com/yukikurage/mars-colony-api/internal/services"
)

type task struct {
	name string
	run  func(c *Command, r *services.ReportService) error
}

var tasks = map[string]task{
	"1": {"All colonists in module 1", moduleResidents},
	"2": {`IDs of colonists in module_1 without "engineer" in speciality or position`, nonEngineers},
	"3": {"Minor colonists", minors},
	"4": {`Colonists with "chief" or "middle" in position`, chiefOrMiddle},
	"5": {"Unfinished jobs under 20 hours", shortJobs},
	"6": {"Team leaders of the largest teams", largestTeams},
	"7": {"Move colonists under 21 from module_1 to module_3", relocate},
	"8": {"Geological department members with more than 25 hours of work", departmentHours},
}

func moduleResidents(c *Command, r *services.ReportService) error {
	colonists, err := r.ColonistsInModule(constants.DefaultModule)
	if err != nil {
		return err
	}
	if len(colonists) == 0 {
		c.printf("No colonists in %s\n", constants.DefaultModule)
		return nil
	}

	c.printf("Colonists in %s:\n", constants.DefaultModule)
	for i, colonist := range colonists {
		c.printf("%d. %s\n", i+1, colonist)
	}
	return nil
}

func nonEngineers(c *Command, r *services.ReportService) error {
	ids, err := r.IDsWithoutKeyword(constants.DefaultModule, constants.DefaultExcludedKeyword)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		c.printf("No colonists match the criteria\n")
		return nil
	}

	c.printf("IDs of colonists in %s without '%s' in speciality or position:\n", constants.DefaultModule, constants.DefaultExcludedKeyword)
	for _, id := range ids {
		c.printf("%d\n", id)
	}
	return nil
}

func minors(c *Command, r *services.ReportService) error {
	rows, err := r.ColonistsYoungerThan(constants.MinorAgeThreshold)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		c.printf("No minor colonists found\n")
		return nil
	}

	c.printf("Minor colonists:\n")
	for _, row := range rows {
		c.printf("%s age: %d years\n", row.Colonist, row.Age)
	}
	return nil
}

func chiefOrMiddle(c *Command, r *services.ReportService) error {
	colonists, err := r.ColonistsWithPositionKeywords(constants.PositionKeywords...)
	if err != nil {
		return err
	}
	quoted := "'" + strings.Join(constants.PositionKeywords, "' or '") + "'"
	if len(colonists) == 0 {
		c.printf("No colonists with %s in position\n", quoted)
		return nil
	}

	c.printf("Colonists with %s in position:\n", quoted)
	for _, colonist := range colonists {
		c.printf("%s\n", colonist)
	}
	return nil
}

func shortJobs(c *Command, r *services.ReportService) error {
	jobs, err := r.ShortUnfinishedJobs(constants.ShortJobHours)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		c.printf("No unfinished jobs under %d hours\n", constants.ShortJobHours)
		return nil
	}

	c.printf("Jobs (<%d hours, unfinished):\n", constants.ShortJobHours)
	for _, job := range jobs {
		c.printf("%s\n", job)
	}
	return nil
}

func largestTeams(c *Command, r *services.ReportService) error {
	rows, size, err := r.LargestTeams()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		c.printf("No jobs found\n")
		return nil
	}

	c.printf("Jobs with the largest team (%d members):\n", size)
	for i, row := range rows {
		team := "not specified"
		if row.Job.Collaborators.Len() > 0 {
			team = membership.Format(row.Job.Collaborators)
		}
		c.printf("%d. Job: %s\n", i+1, row.Job.Description)
		c.printf("   Team leader: %s\n", row.LeaderName)
		c.printf("   Team: %s (size: %d)\n", team, row.TeamSize)
	}
	return nil
}

func relocate(c *Command, r *services.ReportService) error {
	req := reports.RelocationRequest{
		FromModule: constants.RelocationSourceModule,
		MaxAge:     constants.RelocationMaxAge,
		ToModule:   constants.RelocationTargetModule,
	}

	confirm := reports.ConfirmFunc(func(candidates []models.Colonist, target string) (bool, error) {
		c.printf("Found %d colonists to relocate:\n", len(candidates))
		for _, colonist := range candidates {
			c.printf("  - %s, age: %d, current address: %s\n", colonist, colonist.Age, colonist.Address)
		}
		answer, err := c.prompt(fmt.Sprintf("\nConfirm moving them to '%s' (y/n): ", target))
		if err != nil && answer == "" {
			// A closed input is a refusal.
			return false, nil
		}
		return strings.ToLower(answer) == "y", nil
	})

	result, err := r.Relocate(services.SystemActor, req, confirm)
	if err != nil {
		return err
	}
	switch {
	case result.BeforeCount == 0:
		c.printf("No colonists in %s younger than %d to relocate\n", req.FromModule, req.MaxAge)
	case !result.Confirmed:
		c.printf("Relocation cancelled\n")
	default:
		for _, t := range result.Transitions {
			c.printf("Address changed for %d %s: %s -> %s\n", t.ColonistID, t.Name, t.From, t.To)
		}
		c.printf("\nRelocated %d colonists\n", result.Changed())
	}
	return nil
}

func departmentHours(c *Command, r *services.ReportService) error {
	result, err := r.DepartmentHours(reports.HoursQuery{
		TitleKeywords: constants.GeologicalDepartmentKeywords,
		MinHours:      constants.DepartmentMinHours,
	})
	if err != nil {
		return err
	}
	if result.Outcome == reports.HoursDepartmentNotFound {
		c.printf("Geological department not found\n")
		return nil
	}

	c.printf("Found department: %s (ID: %d)\n", result.Department.Title, result.Department.ID)
	if result.Outcome == reports.HoursNoMembers {
		c.printf("The department has no members\n")
		return nil
	}

	c.printf("Department members (ID): %s\n", membership.Format(result.MemberIDs))
	if len(result.Members) == 0 {
		c.printf("No members with more than %d hours of finished work\n", constants.DepartmentMinHours)
		return nil
	}

	c.printf("\nGeological department members with more than %d hours of finished work:\n", constants.DepartmentMinHours)
	for _, m := range result.Members {
		c.printf("%s (ID: %d) - %d hours\n", m.Colonist.DisplayName(), m.Colonist.ID, m.Hours)
	}
	return nil
}
