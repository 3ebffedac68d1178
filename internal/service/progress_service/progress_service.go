package progress_service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/database"
	"github.com/tcp_snm/quest/internal/service"
)

func (p *ProgressService) Start() {
	if p.DB == nil {
		panic("progress service expects non-nil db")
	}
	if p.Stats == nil {
		panic("progress service expects non-nil stats recorder")
	}
	if p.Cache == nil {
		p.Cache = noopProgressCache{}
	}
	if p.BeginTx == nil {
		p.BeginTx = poolTxStarter
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	p.logger = logrus.WithField("from", "progress service")
	p.logger.Infof("progress service started with %T", p.Cache)
}

func poolTxStarter(ctx context.Context) (pgx.Tx, database.Querier, error) {
	tx, err := service.GetNewTransaction(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tx, database.New(tx), nil
}
