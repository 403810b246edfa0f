package main

import (
	"bufio"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"testing"
)

var createTable = regexp.MustCompile(`^CREATE TABLE (?:IF NOT EXISTS )?(\w+) \($`)

// schemaColumns reads the column names of every table created in db/*.sql.
func schemaColumns(t *testing.T) map[string][]string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("db", "*.sql"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no migrations found: %v", err)
	}
	tables := map[string][]string{}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			t.Fatal(err)
		}
		var table string
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if m := createTable.FindStringSubmatch(line); m != nil {
				table = m[1]
				continue
			}
			if table == "" || line == "" || strings.HasPrefix(line, "--") {
				continue
			}
			if strings.HasPrefix(line, ");") {
				table = ""
				continue
			}
			tables[table] = append(tables[table], strings.Fields(line)[0])
		}
		f.Close()
	}
	return tables
}

// dbColumns lists the db tags RowToStructByName scans into.
func dbColumns(v any) []string {
	var cols []string
	rt := reflect.TypeOf(v)
	for i := 0; i < rt.NumField(); i++ {
		if tag := rt.Field(i).Tag.Get("db"); tag != "" && tag != "-" {
			cols = append(cols, tag)
		}
	}
	return cols
}

// Every query selects * into these structs, so columns and tags must agree.
func TestRowStructsMatchSchema(t *testing.T) {
	tables := schemaColumns(t)

	cases := []struct {
		table string
		row   any
	}{
		{"users", user{}},
		{"user_profiles", userProfile{}},
		{"training_sessions", trainingSession{}},
		{"competitions", competition{}},
		{"consumed_foods", consumedFoodRow{}},
		{"session_ai_advice", sessionAIAdvice{}},
		{"ai_advice", aiAdvice{}},
	}
	for _, tc := range cases {
		t.Run(tc.table, func(t *testing.T) {
			got, want := dbColumns(tc.row), tables[tc.table]
			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("struct columns %v, table columns %v", got, want)
			}
		})
	}

	if !slices.Contains(tables["consumed_foods"], "seq") {
		t.Error("consumed_foods needs a seq column to keep insertion order")
	}
}
