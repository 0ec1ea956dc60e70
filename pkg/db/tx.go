package db

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner abstracts transaction execution so services can be tested with a
// plain gorm connection instead of the pooled client.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormTxRunner adapts a raw *gorm.DB (such as the sqlite test handle) to the
// TxRunner interface.
type GormTxRunner struct {
	DB *gorm.DB
}

func (r GormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.DB.WithContext(ctx).Transaction(fn)
}
