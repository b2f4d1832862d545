package app

import (
	"github.com/felixgeelhaar/tempo/internal/productivity/domain/task"
	productivityPersistence "github.com/felixgeelhaar/tempo/internal/productivity/infrastructure/persistence"
	schedulingDomain "github.com/felixgeelhaar/tempo/internal/scheduling/domain"
	schedulingPersistence "github.com/felixgeelhaar/tempo/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/outbox"
)

// RepositoryFactory creates repositories over one connection. The SQL
// repositories write portable statements, so the driver only decides
// placeholder style, which the connection handles.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// TaskRepository creates the task repository.
func (f *RepositoryFactory) TaskRepository() task.Repository {
	return productivityPersistence.NewSQLTaskRepository(f.conn)
}

// AvailabilityRepository creates the weekly availability repository.
func (f *RepositoryFactory) AvailabilityRepository() schedulingDomain.AvailabilityRepository {
	return schedulingPersistence.NewSQLAvailabilityRepository(f.conn)
}

// ScheduleRepository creates the schedule repository.
func (f *RepositoryFactory) ScheduleRepository() schedulingDomain.ScheduleRepository {
	return schedulingPersistence.NewSQLScheduleRepository(f.conn)
}

// RunRepository creates the schedule run history repository.
func (f *RepositoryFactory) RunRepository() schedulingDomain.RunRepository {
	return schedulingPersistence.NewSQLRunRepository(f.conn)
}

// OutboxRepository creates the outbox repository.
func (f *RepositoryFactory) OutboxRepository() outbox.Repository {
	return outbox.NewSQLRepository(f.conn)
}

// UnitOfWork creates a unit of work bound to the connection.
func (f *RepositoryFactory) UnitOfWork() *database.UnitOfWork {
	return database.NewUnitOfWork(f.conn)
}

// Driver returns the database driver.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}

// Connection returns the underlying connection.
func (f *RepositoryFactory) Connection() database.Connection {
	return f.conn
}
