package relational

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

const (
	// sqliteDriverName 带自定义函数的 SQLite 驱动
	sqliteDriverName = "sqlite3_catalog"

	// sqliteLowerFunc 按 Unicode 规则转小写，与 strings.ToLower 相同
	sqliteLowerFunc = "unicode_lower"
)

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(sqliteLowerFunc, strings.ToLower, true)
		},
	})
}
