package reconciler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/tabular"
)

func parse(t *testing.T, name string, lines ...string) *tabular.File {
	t.Helper()
	f, err := tabular.Parse(name, []byte(strings.Join(lines, "\r\n")))
	require.NoError(t, err)
	return f
}

func TestDelete(t *testing.T) {
	base := parse(t, "base.csv", "id,v", "1,a", "2,b")

	t.Run("removes matched identifiers", func(t *testing.T) {
		result, err := Delete(base, DeleteRequest{
			KeyColumn:   "id",
			Identifiers: keys.SplitIdentifiers("1, 3"),
			Keys:        keys.Config{Trim: true},
		})
		require.NoError(t, err)

		assert.Equal(t, []tabular.Record{{"id": "2", "v": "b"}}, result.Kept)
		assert.Equal(t, []tabular.Record{{"id": "1", "v": "a"}}, result.ToDelete)
		assert.Equal(t, []string{"3"}, result.NotFound)
		assert.Equal(t, 2, result.Distinct)
		assert.Equal(t, 2, result.Requested)
		assert.True(t, result.HasChanges())
	})

	t.Run("identifiers are deduplicated after normalization", func(t *testing.T) {
		result, err := Delete(base, DeleteRequest{
			KeyColumn:   "id",
			Identifiers: []string{" 1", "1 ", "", "  "},
			Keys:        keys.Config{Trim: true},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Distinct)
		assert.Len(t, result.ToDelete, 1)
		assert.Empty(t, result.NotFound)
	})

	t.Run("case sensitivity follows config", func(t *testing.T) {
		f := parse(t, "codes.csv", "code,v", "AB,1", "cd,2")

		result, err := Delete(f, DeleteRequest{KeyColumn: "code", Identifiers: []string{"ab", "CD"}})
		require.NoError(t, err)
		assert.Empty(t, result.ToDelete)
		assert.Equal(t, []string{"ab", "CD"}, result.NotFound)

		result, err = Delete(f, DeleteRequest{
			KeyColumn:   "code",
			Identifiers: []string{"ab", "CD"},
			Keys:        keys.Config{CaseInsensitive: true},
		})
		require.NoError(t, err)
		assert.Len(t, result.ToDelete, 2)
		assert.Empty(t, result.Kept)
	})

	t.Run("unmatched identifiers are reported as typed", func(t *testing.T) {
		result, err := Delete(base, DeleteRequest{
			KeyColumn:   "id",
			Identifiers: []string{"ABC", "abc", "Xy", "1"},
			Keys:        keys.Config{CaseInsensitive: true},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"ABC", "Xy"}, result.NotFound)
		assert.Equal(t, 3, result.Distinct)
	})

	t.Run("records without a key are kept", func(t *testing.T) {
		f := parse(t, "blank.csv", "id,v", ",x", "1,y")
		result, err := Delete(f, DeleteRequest{KeyColumn: "id", Identifiers: []string{"1"}, Keys: keys.Config{Trim: true}})
		require.NoError(t, err)
		assert.Equal(t, []tabular.Record{{"id": "", "v": "x"}}, result.Kept)
	})

	t.Run("every copy of a duplicated key is removed", func(t *testing.T) {
		f := parse(t, "dups.csv", "id,v", "1,a", "1,b", "2,c")
		result, err := Delete(f, DeleteRequest{KeyColumn: "id", Identifiers: []string{"1"}})
		require.NoError(t, err)
		assert.Len(t, result.ToDelete, 2)
		require.Len(t, result.Duplicates, 1)
		assert.Equal(t, keys.Duplicate{Key: "1", Rows: []int{0, 1}}, result.Duplicates[0])
	})

	t.Run("reject policy fails on duplicates", func(t *testing.T) {
		f := parse(t, "dups.csv", "id,v", "1,a", "1,b")
		_, err := Delete(f, DeleteRequest{KeyColumn: "id", Identifiers: []string{"1"}, Duplicates: keys.DuplicatesReject})
		assert.True(t, errors.IsDuplicateKey(err))
	})

	t.Run("missing key column", func(t *testing.T) {
		_, err := Delete(base, DeleteRequest{KeyColumn: "sku", Identifiers: []string{"1"}})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "base.csv")

		_, err = Delete(base, DeleteRequest{})
		assert.EqualError(t, err, "key column is required")
	})

	t.Run("input is not mutated", func(t *testing.T) {
		result, err := Delete(base, DeleteRequest{KeyColumn: "id", Identifiers: []string{"2"}})
		require.NoError(t, err)
		result.Kept[0]["v"] = "changed"
		assert.Equal(t, "a", base.Records[0]["v"])
	})
}

func TestDeletePartition(t *testing.T) {
	base := parse(t, "base.csv", "id,v", "1,a", " 2 ,b", "3,c", ",d", "2,e", "X,f")
	tests := []struct {
		name string
		ids  string
		cfg  keys.Config
	}{
		{"none", "", keys.Config{}},
		{"some", "2;x", keys.Config{Trim: true, CaseInsensitive: true}},
		{"all", "1 2 3 x", keys.Config{Trim: true, CaseInsensitive: true}},
		{"raw", " 2 ", keys.Config{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Delete(base, DeleteRequest{KeyColumn: "id", Identifiers: keys.SplitIdentifiers(tt.ids), Keys: tt.cfg})
			require.NoError(t, err)
			assert.Equal(t, base.Len(), len(result.Kept)+len(result.ToDelete))

			removed := make(map[string]bool)
			for _, rec := range result.ToDelete {
				removed[keys.Of(rec, "id", tt.cfg)] = true
			}
			for _, rec := range result.Kept {
				assert.False(t, removed[keys.Of(rec, "id", tt.cfg)], "kept record %v shares a key with a removed one", rec)
			}
		})
	}
}

func TestUpsert(t *testing.T) {
	t.Run("updates and inserts", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a")
		mods := parse(t, "mods.csv", "id,v", "1,b", "2,c")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)

		assert.Equal(t, []tabular.Record{{"id": "1", "v": "b"}}, result.Changed)
		assert.Equal(t, map[string]map[string]string{"1": {"v": "a"}}, result.ChangedFields)
		assert.Equal(t, []tabular.Record{{"id": "2", "v": "c"}}, result.Inserted)
		assert.Equal(t, []tabular.Record{{"id": "1", "v": "b"}, {"id": "2", "v": "c"}}, result.Records)
		assert.Equal(t, []string{"id", "v"}, result.Headers)
		assert.False(t, result.SchemaChanged)
		assert.Equal(t, map[string]struct{}{"1": {}, "2": {}}, result.ChangedKeys())
	})

	t.Run("identical modification is consumed", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a", "2,b")
		mods := parse(t, "mods.csv", "id,v", "1,a")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)
		assert.Empty(t, result.Changed)
		assert.Empty(t, result.Inserted)
		assert.Equal(t, 2, result.Unchanged)
		assert.False(t, result.HasChanges())
		assert.Empty(t, result.ChangedKeys())
	})

	t.Run("partial modification keeps other base values", func(t *testing.T) {
		base := parse(t, "base.csv", "id,name,city", "1,Ann,Oslo")
		mods := parse(t, "mods.csv", "id,city", "1,Bergen")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)
		require.Len(t, result.Changed, 1)
		assert.Equal(t, tabular.Record{"id": "1", "name": "Ann", "city": "Bergen"}, result.Changed[0])
		assert.Equal(t, map[string]string{"city": "Oslo"}, result.ChangedFields["1"])
	})

	t.Run("original schema drops mod-only columns", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a")
		mods := parse(t, "mods.csv", "id,v,extra", "1,a,x", "2,b,y")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id", Schema: SchemaOriginal})
		require.NoError(t, err)
		assert.Empty(t, result.Changed)
		assert.Equal(t, []tabular.Record{{"id": "2", "v": "b"}}, result.Inserted)
		assert.False(t, result.SchemaChanged)
	})

	t.Run("union schema appends mod-only columns", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a", "3,c")
		mods := parse(t, "mods.csv", "extra,id", "x,1", ",3")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id", Schema: SchemaUnion})
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "v", "extra"}, result.Headers)
		assert.True(t, result.SchemaChanged)
		require.Len(t, result.Changed, 1)
		assert.Equal(t, map[string]string{"extra": ""}, result.ChangedFields["1"])
		assert.Equal(t, 1, result.Unchanged)
	})

	t.Run("normalized keys match across files", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "ABC,a")
		mods := parse(t, "mods.csv", "id,v", " abc ,b")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id", Keys: keys.Config{Trim: true, CaseInsensitive: true}})
		require.NoError(t, err)
		require.Len(t, result.Changed, 1)
		assert.Equal(t, " abc ", result.Changed[0]["id"])
		assert.Contains(t, result.ChangedFields, "abc")
		assert.Empty(t, result.Inserted)
	})

	t.Run("mods without a key are skipped", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a")
		mods := parse(t, "mods.csv", "id,v", ",b", "2,c")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Len(t, result.Inserted, 1)
	})

	t.Run("duplicate mods follow the policy", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a")
		mods := parse(t, "mods.csv", "id,v", "1,first", "2,x", "1,last")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)
		assert.Equal(t, "last", result.Changed[0]["v"])
		require.Len(t, result.ModDuplicates, 1)

		result, err = Upsert(base, mods, UpsertRequest{KeyColumn: "id", Duplicates: keys.DuplicatesFirst})
		require.NoError(t, err)
		assert.Equal(t, "first", result.Changed[0]["v"])

		_, err = Upsert(base, mods, UpsertRequest{KeyColumn: "id", Duplicates: keys.DuplicatesReject})
		assert.True(t, errors.IsDuplicateKey(err))
	})

	t.Run("duplicate inserts appear once at the winning position", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "9,z")
		mods := parse(t, "mods.csv", "id,v", "1,a", "2,b", "1,c")

		result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)
		assert.Equal(t, []tabular.Record{{"id": "2", "v": "b"}, {"id": "1", "v": "c"}}, result.Inserted)
	})

	t.Run("key column must be in both files", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a")
		mods := parse(t, "mods.csv", "sku,v", "1,b")

		_, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
		assert.Contains(t, err.Error(), "mods.csv")
		assert.NotContains(t, err.Error(), "base.csv")
	})

	t.Run("unknown schema", func(t *testing.T) {
		base := parse(t, "base.csv", "id,v", "1,a")
		_, err := Upsert(base, base, UpsertRequest{KeyColumn: "id", Schema: "wide"})
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestUpsertCoverage(t *testing.T) {
	base := parse(t, "base.csv", "id,v", "1,a", "2,b", ",blank", "3,c")
	mods := parse(t, "mods.csv", "id,v", "3,C", "4,d", "2,b", "5,e")

	result, err := Upsert(base, mods, UpsertRequest{KeyColumn: "id"})
	require.NoError(t, err)

	// Every base record once, then every mod whose key the base lacks once.
	require.Len(t, result.Records, base.Len()+2)
	for i := range base.Records {
		assert.Equal(t, base.Records[i]["id"], result.Records[i]["id"])
	}
	assert.Equal(t, "4", result.Records[4]["id"])
	assert.Equal(t, "5", result.Records[5]["id"])
	assert.Equal(t, "C", result.Records[3]["v"])
}

func TestParseSchemaMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SchemaMode
		wantErr bool
	}{
		{"", SchemaOriginal, false},
		{"original", SchemaOriginal, false},
		{" Union ", SchemaUnion, false},
		{"both", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSchemaMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "Union", SchemaUnion.Name())
}
