package pgsql

import (
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		ProfileRepo:      newPgxProfileRepository(dbPool),
		ClientRepo:       newPgxClientRepository(dbPool),
		ProjectRepo:      newPgxProjectRepository(dbPool),
		DealRepo:         newPgxDealRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		TaskRepo:         newPgxTaskRepository(dbPool),
		APITokenRepo:     newPgxAPITokenRepository(dbPool),
	}
}
