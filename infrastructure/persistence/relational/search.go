package relational

import (
	"fmt"
	"strings"

	"catalog/domain/shared"

	"gorm.io/gorm"
)

// Scope 把搜索过滤条件翻译成 GORM 查询片段
type Scope = func(*gorm.DB) *gorm.DB

// likeEscaper LIKE 模式里的通配符按字面匹配；'!' 作为转义符
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsIgnoreCase column 不区分大小写地包含 value
// 大小写折叠与内存实现的 strings.ToLower 一致（Unicode），比较本身区分重音
func ContainsIgnoreCase(dialect, column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
		return db.Where(fmt.Sprintf("%s LIKE ? ESCAPE '!'", lowerExpr(dialect, column)), pattern)
	}
}

// lowerExpr 各方言下 Unicode 感知的小写表达式
// SQLite 内置 lower() 只处理 ASCII，改用连接上注册的 unicode_lower；
// MySQL 的 _ci 排序规则下 LIKE 忽略重音，比较时切到 utf8mb4_bin
func lowerExpr(dialect, column string) string {
	switch dialect {
	case DialectSQLite:
		return fmt.Sprintf("%s(%s)", sqliteLowerFunc, column)
	case DialectMySQL:
		return fmt.Sprintf("LOWER(%s) COLLATE utf8mb4_bin", column)
	default:
		return fmt.Sprintf("LOWER(%s)", column)
	}
}

// InJoinTable 所属 id 出现在关联表中且关联到任一 targetIDs
// 例: id IN (SELECT genre_id FROM genre_categories WHERE category_id IN (...))
func InJoinTable(column, table, ownerColumn, targetColumn string, targetIDs []string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(targetIDs) == 0 {
			return db
		}
		subQuery := db.Session(&gorm.Session{NewDB: true}).
			Table(table).
			Select(ownerColumn).
			Where(fmt.Sprintf("%s IN ?", targetColumn), targetIDs)
		return db.Where(fmt.Sprintf("%s IN (?)", column), subQuery)
	}
}

// sortField 可排序字段在表中的列，text 决定是否需要二进制排序规则
type sortField struct {
	column string
	text   bool
}

// tieBreaker 所有排序的最后一个键，值相同的行在各数据库中顺序一致
const tieBreaker = "id ASC"

// orderClause 生成 ORDER BY；未指定或不在白名单中时按 created_at desc
// 文本列使用二进制排序规则，排序结果与内存实现的字节序一致
func orderClause(dialect string, fields map[string]sortField, sort string, dir shared.SortDirection) string {
	field, ok := fields[sort]
	if !ok {
		return "created_at DESC, " + tieBreaker
	}
	direction := "ASC"
	if dir == shared.SortDesc {
		direction = "DESC"
	}
	column := field.column
	if field.text {
		column += binaryCollation(dialect)
	}
	return column + " " + direction + ", " + tieBreaker
}

func binaryCollation(dialect string) string {
	switch dialect {
	case DialectMySQL:
		return " COLLATE utf8mb4_bin"
	case DialectPostgres:
		return ` COLLATE "C"`
	default:
		// SQLite 默认的 BINARY 排序规则即字节序
		return ""
	}
}

// searchRows 先按过滤条件计数，再排序分页取出当前页的行
func searchRows[P any](db *gorm.DB, scopes []Scope, order string, offset, limit int) ([]P, int, error) {
	var model P
	var total int64
	if err := db.Model(&model).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rows: %w", err)
	}

	var rows []P
	if err := db.Model(&model).Scopes(scopes...).Order(order).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search rows: %w", err)
	}
	return rows, int(total), nil
}

func stringIDs[ID shared.Identifier](ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
