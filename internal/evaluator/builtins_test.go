package evaluator

import (
	"strings"
	"testing"

	"lute/internal/value"
)

func TestLenBuiltin(t *testing.T) {
	env := evalSource(t, `
a = len("héllo")
b = len([1, 2, 3])
`)
	assertInt(t, binding(t, env, "a"), 5)
	assertInt(t, binding(t, env, "b"), 3)

	err := evalError(t, `x = len(5)`)
	if !strings.Contains(err.Error(), "argument to 'len' must be STR or LIST") {
		t.Errorf("got %q, want len type error", err)
	}
}

func TestTypeBuiltin(t *testing.T) {
	env := evalSource(t, `
a = type(1)
b = type(1.5)
c = type([1])
d = type(type)
`)
	for name, want := range map[string]string{
		"a": "INT", "b": "FLOAT", "c": "LIST", "d": "BUILTIN",
	} {
		got := binding(t, env, name).(*value.Str)
		if got.Value != want {
			t.Errorf("%s = %q, want %q", name, got.Value, want)
		}
	}
}

func TestStrBuiltin(t *testing.T) {
	env := evalSource(t, `s = str(42)`)
	got := binding(t, env, "s").(*value.Str)
	if got.Value != "42" {
		t.Errorf("s = %q, want %q", got.Value, "42")
	}
}

func TestRangeBuiltin(t *testing.T) {
	env := evalSource(t, `
a = range(3)
b = range(2, 5)
c = range(0)
`)
	a := binding(t, env, "a").(*value.List)
	if len(a.Items) != 3 {
		t.Fatalf("range(3) has %d items, want 3", len(a.Items))
	}
	assertInt(t, a.Items[0], 0)
	assertInt(t, a.Items[2], 2)

	b := binding(t, env, "b").(*value.List)
	assertInt(t, b.Items[0], 2)
	assertInt(t, b.Items[2], 4)

	c := binding(t, env, "c").(*value.List)
	if len(c.Items) != 0 {
		t.Errorf("range(0) has %d items, want 0", len(c.Items))
	}
}

func TestPushBuiltin(t *testing.T) {
	env := evalSource(t, `
xs = [1]
ys = push(xs, 2, 3)
`)
	xs := binding(t, env, "xs").(*value.List)
	if len(xs.Items) != 1 {
		t.Errorf("push mutated its argument: %s", xs.Inspect())
	}
	ys := binding(t, env, "ys").(*value.List)
	if len(ys.Items) != 3 {
		t.Fatalf("ys has %d items, want 3", len(ys.Items))
	}
	assertInt(t, ys.Items[2], 3)
}

func TestCharsBuiltin(t *testing.T) {
	env := evalSource(t, `cs = chars("ok")`)
	cs := binding(t, env, "cs").(*value.List)
	if len(cs.Items) != 2 {
		t.Fatalf("cs has %d items, want 2", len(cs.Items))
	}
	if cs.Items[0].(*value.Char).Value != 'o' {
		t.Errorf("cs[0] = %s, want o", cs.Items[0].Inspect())
	}
}

func TestDbBuiltins(t *testing.T) {
	env := evalSource(t, `
conn = db_open("sqlite3", ":memory:")
db_exec(conn, "CREATE TABLE songs (id INTEGER PRIMARY KEY, title TEXT)")
db_exec(conn, "INSERT INTO songs (title) VALUES (?)", "prelude")
counts = db_exec(conn, "INSERT INTO songs (title) VALUES (?)", "gigue")
rows = db_query(conn, "SELECT title FROM songs ORDER BY id")
db_close(conn)
`)

	counts := binding(t, env, "counts").(*value.List)
	assertInt(t, counts.Items[0], 1)
	assertInt(t, counts.Items[1], 2)

	rows := binding(t, env, "rows").(*value.List)
	if len(rows.Items) != 3 {
		t.Fatalf("rows has %d entries, want header plus 2 rows", len(rows.Items))
	}
	header := rows.Items[0].(*value.List)
	if header.Items[0].(*value.Str).Value != "title" {
		t.Errorf("header = %s, want [title]", header.Inspect())
	}
	first := rows.Items[1].(*value.List)
	if first.Items[0].(*value.Str).Value != "prelude" {
		t.Errorf("first row = %s, want [prelude]", first.Inspect())
	}
}

func TestDbExecSaturatesLargeIds(t *testing.T) {
	env := evalSource(t, `
conn = db_open("sqlite3", ":memory:")
db_exec(conn, "CREATE TABLE events (id INTEGER PRIMARY KEY, kind TEXT)")
counts = db_exec(conn, "INSERT INTO events (id, kind) VALUES (3000000000, ?)", "boot")
db_close(conn)
`)
	counts := binding(t, env, "counts").(*value.List)
	assertInt(t, counts.Items[0], 1)
	assertInt(t, counts.Items[1], 2147483647)
}

func TestDbInvalidHandle(t *testing.T) {
	err := evalError(t, `rows = db_query(999, "SELECT 1")`)
	if !strings.Contains(err.Error(), "invalid connection handle") {
		t.Errorf("got %q, want invalid handle error", err)
	}
}
