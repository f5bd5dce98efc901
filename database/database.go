package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	projectRepo        *ProjectRepo
	teamMemberRepo     *TeamMemberRepo
	jobApplicationRepo *JobApplicationRepo
	contactMessageRepo *ContactMessageRepo
	clientReviewRepo   *ClientReviewRepo
	db                 *gorm.DB
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:        NewProjectRepo(db),
		teamMemberRepo:     NewTeamMemberRepo(db),
		jobApplicationRepo: NewJobApplicationRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
		clientReviewRepo:   NewClientReviewRepo(db),
		db:                 db,
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TeamMemberRepo() *TeamMemberRepo {
	return d.teamMemberRepo
}

func (d Database) JobApplicationRepo() *JobApplicationRepo {
	return d.jobApplicationRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) ClientReviewRepo() *ClientReviewRepo {
	return d.clientReviewRepo
}

// Ping checks the primary connection, used by the health endpoint.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
