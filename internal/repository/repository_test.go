package repository

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/membership"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the repositories against an in-memory SQLite database
type RepositoryTestSuite struct {
	suite.Suite
	storage    *database.Storage
	db         *gorm.DB
	colonists  ColonistRepository
	jobs       JobRepository
	categories CategoryRepository
	depts      DepartmentRepository
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

// SetupTest runs before each test
func (s *RepositoryTestSuite) SetupTest() {
	s.storage = database.NewStorage(nil)
	s.Require().NoError(s.storage.Initialize(database.Location{
		Driver:   database.DriverSQLite,
		DSN:      ":memory:",
		LogLevel: logger.Silent,
	}))

	var err error
	s.db, err = s.storage.OpenSession()
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(s.db, nil))

	s.colonists = NewColonistRepository(s.db)
	s.jobs = NewJobRepository(s.db)
	s.categories = NewCategoryRepository(s.db)
	s.depts = NewDepartmentRepository(s.db)
}

// TearDownTest runs after each test
func (s *RepositoryTestSuite) TearDownTest() {
	s.Require().NoError(s.storage.Close())
}

func (s *RepositoryTestSuite) createColonist(name, email string) *models.Colonist {
	colonist := &models.Colonist{Name: name, Age: 30, Email: email, Address: "module_1"}
	s.Require().NoError(s.colonists.Create(colonist))
	return colonist
}

func (s *RepositoryTestSuite) createJob(leaderID uint64, description string) *models.Job {
	job := &models.Job{TeamLeaderID: leaderID, Description: description, WorkSize: 10}
	s.Require().NoError(s.jobs.Create(job))
	return job
}

func (s *RepositoryTestSuite) createCategory(name string) *models.Category {
	category := &models.Category{Name: name}
	s.Require().NoError(s.categories.Create(category))
	return category
}

func (s *RepositoryTestSuite) TestColonist_UniqueEmailAtStorageLayer() {
	s.createColonist("Emma", "emma.watson@mars.org")

	err := s.colonists.Create(&models.Colonist{Name: "Other", Age: 20, Email: "emma.watson@mars.org"})
	s.Error(err)

	found, err := s.colonists.FindByEmail("emma.watson@mars.org")
	s.Require().NoError(err)
	s.Equal("Emma", found.Name)
}

func (s *RepositoryTestSuite) TestColonist_ModifiedDateRefreshedOnUpdate() {
	colonist := s.createColonist("Emma", "emma.watson@mars.org")
	s.False(colonist.ModifiedDate.IsZero())
	before := colonist.ModifiedDate

	colonist.Address = "module_2"
	s.Require().NoError(s.colonists.Update(colonist))
	s.False(colonist.ModifiedDate.Before(before))
}

func (s *RepositoryTestSuite) TestColonist_FindAndCountByIDs() {
	a := s.createColonist("A", "a@mars.org")
	b := s.createColonist("B", "b@mars.org")

	found, err := s.colonists.FindByIDs([]uint64{b.ID, a.ID, 999})
	s.Require().NoError(err)
	s.Len(found, 2)

	count, err := s.colonists.CountByIDs([]uint64{a.ID, 999})
	s.Require().NoError(err)
	s.EqualValues(1, count)

	count, err = s.colonists.CountByIDs(nil)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *RepositoryTestSuite) TestJob_DefaultsAndCollaboratorsRoundTrip() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	job := &models.Job{
		TeamLeaderID:  leader.ID,
		Description:   "deployment of residential modules 1 and 2",
		Collaborators: membership.List{2, 3},
	}
	s.Require().NoError(s.jobs.Create(job))
	s.False(job.StartDate.IsZero())

	found, err := s.jobs.FindByID(job.ID, "Leader")
	s.Require().NoError(err)
	s.Equal(membership.List{2, 3}, found.Collaborators)
	s.Equal(0, found.WorkSize)
	s.False(found.IsFinished)
	s.Equal(leader.ID, found.Leader.ID)
}

func (s *RepositoryTestSuite) TestJob_LegacyTextCollaborators() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	job := s.createJob(leader.ID, "legacy")
	s.Require().NoError(s.db.Exec("UPDATE jobs SET collaborators = ? WHERE id = ?", "2, x, 5", job.ID).Error)

	found, err := s.jobs.FindByID(job.ID)
	s.Require().NoError(err)
	s.Equal(membership.List{2, 5}, found.Collaborators)
}

func (s *RepositoryTestSuite) TestJob_ListUnfinished() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	s.createJob(leader.ID, "open")
	done := s.createJob(leader.ID, "done")
	done.IsFinished = true
	s.Require().NoError(s.jobs.Update(done))

	jobs, total, err := s.jobs.ListUnfinished(utils.PaginationParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(jobs, 1)
	s.Equal("open", jobs[0].Description)
	s.Equal("Ridley", jobs[0].Leader.Name)
}

func (s *RepositoryTestSuite) TestJob_ListUnfinishedPaginates() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	for _, d := range []string{"a", "b", "c"} {
		s.createJob(leader.ID, d)
	}

	jobs, total, err := s.jobs.ListUnfinished(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Len(jobs, 1)

	jobs, total, err = s.jobs.ListUnfinished(utils.PaginationParams{})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Len(jobs, 3)
}

// The server hands one session to every repository for its lifetime.
func (s *RepositoryTestSuite) TestJob_SharedHandleConcurrentCalls() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	job := s.createJob(leader.ID, "open")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, err := s.jobs.ListUnfinished(utils.PaginationParams{Page: 1, Limit: 10})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := s.jobs.FindByID(job.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	jobs, total, err := s.jobs.ListUnfinished(utils.PaginationParams{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Len(jobs, 1)
}

func (s *RepositoryTestSuite) TestCategory_CountUsage() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	geology := s.createCategory("geology")
	idle := s.createCategory("idle")
	s.Require().NoError(s.categories.Attach(s.createJob(leader.ID, "drill").ID, geology.ID))
	s.Require().NoError(s.categories.Attach(s.createJob(leader.ID, "survey").ID, geology.ID))

	n, err := s.categories.CountUsage(geology.ID)
	s.Require().NoError(err)
	s.EqualValues(2, n)

	n, err = s.categories.CountUsage(idle.ID)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *RepositoryTestSuite) TestCategory_AttachDetachAndReplace() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	job := s.createJob(leader.ID, "drilling")
	geology := s.createCategory("geology")
	repair := s.createCategory("repair")

	s.Require().NoError(s.categories.Attach(job.ID, geology.ID))
	s.Require().NoError(s.categories.Attach(job.ID, geology.ID))

	cats, err := s.categories.CategoriesOf(job.ID)
	s.Require().NoError(err)
	s.Require().Len(cats, 1)
	s.Equal("geology", cats[0].Name)

	s.Require().NoError(s.categories.Replace(job.ID, []uint64{repair.ID, geology.ID}))
	cats, err = s.categories.CategoriesOf(job.ID)
	s.Require().NoError(err)
	s.Len(cats, 2)

	err = s.categories.Replace(job.ID, []uint64{repair.ID, 999})
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
	cats, err = s.categories.CategoriesOf(job.ID)
	s.Require().NoError(err)
	s.Len(cats, 2, "failed replace must not change the set")

	s.Require().NoError(s.categories.DetachAll(job.ID))
	cats, err = s.categories.CategoriesOf(job.ID)
	s.Require().NoError(err)
	s.Empty(cats)

	s.True(errors.Is(s.categories.Attach(job.ID, 999), gorm.ErrRecordNotFound))
}

func (s *RepositoryTestSuite) TestCategory_DeleteGuard() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	job := s.createJob(leader.ID, "drilling")
	geology := s.createCategory("geology")
	s.Require().NoError(s.categories.Attach(job.ID, geology.ID))

	err := s.categories.Delete(geology.ID)
	s.Require().ErrorIs(err, ErrCategoryInUse)

	_, err = s.categories.FindByID(geology.ID)
	s.NoError(err, "category must survive a refused delete")
	usage, err := s.categories.CountUsage(geology.ID)
	s.Require().NoError(err)
	s.EqualValues(1, usage)

	s.Require().NoError(s.categories.DetachAll(job.ID))
	s.Require().NoError(s.categories.Delete(geology.ID))
	_, err = s.categories.FindByID(geology.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	s.ErrorIs(s.categories.Delete(geology.ID), gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestJob_DeleteRemovesAssociations() {
	leader := s.createColonist("Ridley", "scott_chief@mars.org")
	job := s.createJob(leader.ID, "drilling")
	geology := s.createCategory("geology")
	s.Require().NoError(s.categories.Attach(job.ID, geology.ID))

	s.Require().NoError(s.jobs.Delete(job.ID))

	usage, err := s.categories.CountUsage(geology.ID)
	s.Require().NoError(err)
	s.Zero(usage)
}

func (s *RepositoryTestSuite) TestDepartment_CRUD() {
	chief := s.createColonist("Linh", "linh.nguyen@mars.org")
	email := "geo@mars.org"
	dept := &models.Department{
		Title:   "Geological Exploration",
		ChiefID: &chief.ID,
		Members: membership.List{chief.ID},
		Email:   &email,
	}
	s.Require().NoError(s.depts.Create(dept))

	found, err := s.depts.FindByID(dept.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.Chief)
	s.Equal("Linh", found.Chief.Name)
	s.True(found.IsChief(chief.ID))

	byEmail, err := s.depts.FindByEmail(email)
	s.Require().NoError(err)
	s.Equal(dept.ID, byEmail.ID)

	found.Title = "Geology"
	s.Require().NoError(s.depts.Update(found))

	all, err := s.depts.List()
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("Geology", all[0].Title)

	s.Require().NoError(s.depts.Delete(dept.ID))
	_, err = s.depts.FindByID(dept.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
