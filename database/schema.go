package database

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// SchemaFile is one embedded schema statement file
type SchemaFile struct {
	Name string
	SQL  string
}

// EnsureSchema creates every table the application needs if it is absent.
// All statements are create-if-not-exists so it is safe to run on every start.
func EnsureSchema(db *sql.DB) error {
	files, err := loadSchemaFiles()
	if err != nil {
		return fmt.Errorf("failed to load schema files: %w", err)
	}

	for _, file := range files {
		if _, err := db.Exec(file.SQL); err != nil {
			return fmt.Errorf("failed to apply schema %s: %w", file.Name, err)
		}
	}

	return nil
}

// loadSchemaFiles reads the embedded schema files in filename order
func loadSchemaFiles() ([]SchemaFile, error) {
	paths, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema files embedded")
	}

	var files []SchemaFile
	for _, path := range paths {
		content, err := schemaFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
		}

		files = append(files, SchemaFile{
			Name: strings.TrimPrefix(path, "schema/"),
			SQL:  string(content),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}
