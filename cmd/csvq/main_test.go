package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsCSV = `name,brand,price,rating
iphone 15 pro,apple,999,4.9
galaxy s24 ultra,samsung,1199,4.8
redmi note 13,xiaomi,299,4.6
iphone 14,apple,799,4.7
galaxy a54,samsung,349,4.2
`

// writeFile creates a file with content in a fresh temp dir
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the command and returns exit code, stdout and stderr
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestListAll(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, _ := runCLI(t, "-f", path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "iphone 15 pro")
	assert.Contains(t, out, "galaxy a54")
	assert.Contains(t, out, "rows: 5")
}

func TestFilterAndSortCSV(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, errOut := runCLI(t, "-f", path, "--where", "price>500", "--order-by", "price=desc", "--format", "csv")
	require.Equal(t, ExitSuccess, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"name,brand,price,rating",
		"galaxy s24 ultra,samsung,1199,4.8",
		"iphone 15 pro,apple,999,4.9",
		"iphone 14,apple,799,4.7",
	}, lines)
}

func TestAggregateJSON(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, errOut := runCLI(t, "-f", path, "--where", "brand=apple", "--aggregate", "rating=avg", "--format", "json")
	require.Equal(t, ExitSuccess, code, errOut)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "avg", rec["operation"])
	assert.Equal(t, "rating", rec["column"])
	assert.Equal(t, 4.8, rec["value"])
	assert.Equal(t, float64(2), rec["count"])
}

func TestAggregateTable(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, _ := runCLI(t, "-f", path, "--aggregate", "price=max")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "1199.00")
}

func TestLimit(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, _ := runCLI(t, "-f", path, "--order-by", "price=asc", "--limit", "2", "--format", "csv")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "name,brand,price,rating\nredmi note 13,xiaomi,299,4.6\ngalaxy a54,samsung,349,4.2\n", out)
}

func TestNoMatches(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, _ := runCLI(t, "-f", path, "--where", "brand=nokia")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "no rows matched the filter condition\n", out)
}

func TestAggregationWithoutNumbers(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, _ := runCLI(t, "-f", path, "--aggregate", "brand=avg")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "aggregation produced no result: no numeric values\n", out)
}

func TestEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	code, out, _ := runCLI(t, "-f", path)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "no data to display\n", out)
}

func TestSchemaMode(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)

	code, out, errOut := runCLI(t, "-f", path, "--schema", "--format", "csv")
	require.Equal(t, ExitSuccess, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "name,kind,"))
	assert.True(t, strings.HasPrefix(lines[3], "price,integer,5,0,0,299,1199,"))
}

func TestParquetInput(t *testing.T) {
	type product struct {
		Name  string  `parquet:"name"`
		Price float64 `parquet:"price"`
	}

	path := filepath.Join(t.TempDir(), "products.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[product](f)
	_, err = w.Write([]product{{"a", 10}, {"b", 30}, {"c", 20}})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	code, out, errOut := runCLI(t, "-f", path, "--order-by", "price=desc", "--format", "csv")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Equal(t, "name,price\nb,30\nc,20\na,10\n", out)
}

func TestGlobInput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("id,v\n1,x\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("id,v\n2,y\n"), 0o600))

	code, out, errOut := runCLI(t, "-f", filepath.Join(dir, "*.csv"), "--where", "id>1", "--format", "json")
	require.Equal(t, ExitSuccess, code, errOut)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "2", rec["id"])
	assert.Equal(t, filepath.Join(dir, "b.csv"), rec["_file"])
}

func TestFileNameWithBrackets(t *testing.T) {
	path := writeFile(t, "sales[2024].csv", "a,b\n1,2\n")

	code, out, errOut := runCLI(t, "-f", path, "--format", "csv")
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Equal(t, "a,b\n1,2\n", out)
	assert.NotContains(t, errOut, "Error:")
}

func TestUnknownExtensionWarns(t *testing.T) {
	path := writeFile(t, "products.dat", productsCSV)

	code, out, errOut := runCLI(t, "-f", path, "--where", "brand=xiaomi", "--format", "csv")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "redmi note 13")
	assert.Contains(t, errOut, "unrecognised file extension")
}

func TestConfigFile(t *testing.T) {
	data := writeFile(t, "products.csv", productsCSV)
	cfg := writeFile(t, "csvq.yaml", "output:\n  format: csv\n  limit: 1\n")

	code, out, errOut := runCLI(t, "-f", data, "--config", cfg)
	require.Equal(t, ExitSuccess, code, errOut)
	assert.Equal(t, "name,brand,price,rating\niphone 15 pro,apple,999,4.9\n", out)

	// Flags take precedence over the file
	code, out, _ = runCLI(t, "-f", data, "--config", cfg, "--limit", "0", "--format", "csv")
	require.Equal(t, ExitSuccess, code)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 6)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("CSVQ_FORMAT", "json")
	path := writeFile(t, "products.csv", productsCSV)

	code, out, _ := runCLI(t, "-f", path, "--where", "brand=xiaomi")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, `{"name":"redmi note 13","brand":"xiaomi","price":"299","rating":"4.6"}`+"\n", out)
}

func TestErrors(t *testing.T) {
	path := writeFile(t, "products.csv", productsCSV)
	missing := filepath.Join(t.TempDir(), "missing.csv")

	tests := []struct {
		name    string
		args    []string
		wantErr []string
	}{
		{
			name:    "missing file",
			args:    []string{"-f", missing},
			wantErr: []string{"Error:", "missing.csv", "check the file path"},
		},
		{
			name:    "file flag required",
			args:    []string{"--where", "a=1"},
			wantErr: []string{"Error:", "file"},
		},
		{
			name:    "unsupported operator",
			args:    []string{"-f", path, "--where", "price>=100"},
			wantErr: []string{"Error:", ">=", "Condition format"},
		},
		{
			name:    "bad aggregation",
			args:    []string{"-f", path, "--aggregate", "price=sum"},
			wantErr: []string{"Error:", "sum", "avg, min, max"},
		},
		{
			name:    "bad direction",
			args:    []string{"-f", path, "--order-by", "price=up"},
			wantErr: []string{"Error:", "Sort format"},
		},
		{
			name:    "unknown column",
			args:    []string{"-f", path, "--where", "colour=red"},
			wantErr: []string{"Error:", `"colour"`, "case-sensitive", "Available columns: brand, name, price, rating"},
		},
		{
			name:    "repeated where",
			args:    []string{"-f", path, "--where", "price>1", "--where", "price<5"},
			wantErr: []string{"Error:", "only be given once"},
		},
		{
			name:    "schema with query",
			args:    []string{"-f", path, "--schema", "--where", "price>1"},
			wantErr: []string{"Error:", "--schema"},
		},
		{
			name:    "negative limit",
			args:    []string{"-f", path, "--limit", "-1"},
			wantErr: []string{"Error:", "non-negative"},
		},
		{
			name:    "unknown format",
			args:    []string{"-f", path, "--format", "xml"},
			wantErr: []string{"Error:", "xml"},
		},
		{
			name:    "positional argument",
			args:    []string{path},
			wantErr: []string{"Error:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.args...)
			assert.Equal(t, ExitFailure, code)
			assert.Empty(t, out)
			for _, want := range tt.wantErr {
				assert.Contains(t, errOut, want)
			}
		})
	}
}

func TestOnceString(t *testing.T) {
	var o onceString
	require.NoError(t, o.Set("a=1"))
	assert.Equal(t, "a=1", o.String())
	assert.Error(t, o.Set("b=2"))
	assert.Equal(t, "a=1", o.String())
	assert.Equal(t, "string", o.Type())
}
