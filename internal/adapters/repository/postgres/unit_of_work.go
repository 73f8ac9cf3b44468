package postgres

import (
	"context"
	"database/sql"
	"file-researcher/internal/core/port"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) FileSetRepo() port.FileSetRepository {
	if u.tx != nil {
		return NewSqlFileSetRepository(u.tx)
	}
	return NewSqlFileSetRepository(u.db)
}

func (u *sqlUnitOfWork) ArchiveRepo() port.ArchiveRepository {
	if u.tx != nil {
		return NewSqlArchiveRepository(u.tx)
	}
	return NewSqlArchiveRepository(u.db)
}

func (u *sqlUnitOfWork) DeliveryAttemptRepo() port.DeliveryAttemptRepository {
	if u.tx != nil {
		return NewSqlDeliveryAttemptRepository(u.tx)
	}
	return NewSqlDeliveryAttemptRepository(u.db)
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
