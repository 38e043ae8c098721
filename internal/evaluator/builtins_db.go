package evaluator

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"lute/internal/value"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var (
	dbConnections = map[int32]*sql.DB{}
	dbNextHandle  int32
)

// funcDbOpen opens a connection and returns an integer handle for it.
func funcDbOpen() *value.Builtin {
	return &value.Builtin{
		Name: "db_open",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("db_open expects 2 arguments: driver, connectionString")
			}
			driver, ok := args[0].(*value.Str)
			if !ok {
				return nil, fmt.Errorf("driver must be of type str")
			}
			connStr, ok := args[1].(*value.Str)
			if !ok {
				return nil, fmt.Errorf("connection string must be of type str")
			}

			db, err := sql.Open(driver.Value, connStr.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to open connection: %v", err)
			}
			if err := db.Ping(); err != nil {
				return nil, fmt.Errorf("failed to ping database: %v", err)
			}

			dbNextHandle++
			dbConnections[dbNextHandle] = db
			return &value.Int{Value: dbNextHandle}, nil
		},
	}
}

// funcDbQuery runs a query and returns its rows as a list whose first
// element is the column-name list, followed by one list per row.
func funcDbQuery() *value.Builtin {
	return &value.Builtin{
		Name: "db_query",
		Fn: func(args ...value.Value) (value.Value, error) {
			db, query, params, err := unpackDbCall("db_query", args)
			if err != nil {
				return nil, err
			}

			rows, err := db.Query(query, params...)
			if err != nil {
				return nil, fmt.Errorf("query failed: %v", err)
			}
			defer rows.Close()

			return renderRows(rows)
		},
	}
}

// funcDbExec runs a statement and returns [rowsAffected, lastInsertId].
func funcDbExec() *value.Builtin {
	return &value.Builtin{
		Name: "db_exec",
		Fn: func(args ...value.Value) (value.Value, error) {
			db, query, params, err := unpackDbCall("db_exec", args)
			if err != nil {
				return nil, err
			}

			result, err := db.Exec(query, params...)
			if err != nil {
				return nil, fmt.Errorf("exec failed: %v", err)
			}

			affected, _ := result.RowsAffected()
			lastID, _ := result.LastInsertId()
			return &value.List{Items: []value.Value{
				&value.Int{Value: clampToInt(affected)},
				&value.Int{Value: clampToInt(lastID)},
			}}, nil
		},
	}
}

func funcDbClose() *value.Builtin {
	return &value.Builtin{
		Name: "db_close",
		Fn: func(args ...value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("db_close expects 1 argument: connection")
			}
			handle, ok := args[0].(*value.Int)
			if !ok {
				return nil, fmt.Errorf("connection handle must be of type int")
			}
			if db, found := dbConnections[handle.Value]; found {
				db.Close()
				delete(dbConnections, handle.Value)
			}
			return &value.Null{}, nil
		},
	}
}

func unpackDbCall(name string, args []value.Value) (*sql.DB, string, []interface{}, error) {
	if len(args) < 2 {
		return nil, "", nil, fmt.Errorf("%s expects at least 2 arguments: connection, sql", name)
	}
	handle, ok := args[0].(*value.Int)
	if !ok {
		return nil, "", nil, fmt.Errorf("connection handle must be of type int")
	}
	query, ok := args[1].(*value.Str)
	if !ok {
		return nil, "", nil, fmt.Errorf("sql must be of type str")
	}
	db, found := dbConnections[handle.Value]
	if !found {
		return nil, "", nil, fmt.Errorf("invalid connection handle")
	}

	params := make([]interface{}, len(args)-2)
	for i := 2; i < len(args); i++ {
		params[i-2] = bindParam(args[i])
	}
	return db, query.Value, params, nil
}

func bindParam(v value.Value) interface{} {
	switch x := v.(type) {
	case *value.Int:
		return int64(x.Value)
	case *value.Float:
		return x.Value
	case *value.Bool:
		return x.Value
	case *value.Null:
		return nil
	default:
		return v.Inspect()
	}
}

func renderRows(rows *sql.Rows) (value.Value, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query failed: %v", err)
	}

	header := make([]value.Value, len(columns))
	for i, col := range columns {
		header[i] = &value.Str{Value: col}
	}
	result := []value.Value{&value.List{Items: header}}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("query failed: %v", err)
		}

		row := make([]value.Value, len(columns))
		for i := range values {
			row[i] = mapColumn(values[i])
		}
		result = append(result, &value.List{Items: row})
	}

	return &value.List{Items: result}, nil
}

// language ints are 32 bits; driver values outside that range saturate
func clampToInt(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

func mapColumn(v interface{}) value.Value {
	if v == nil {
		return &value.Null{}
	}
	switch x := v.(type) {
	case int64:
		return &value.Int{Value: clampToInt(x)}
	case float64:
		return &value.Float{Value: x}
	case []byte:
		return &value.Str{Value: string(x)}
	case string:
		return &value.Str{Value: x}
	case bool:
		return &value.Bool{Value: x}
	case time.Time:
		return &value.Str{Value: x.Format(time.RFC3339)}
	default:
		return &value.Str{Value: fmt.Sprintf("%v", v)}
	}
}
