package csvsync

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/csvsync/pkg/differ"
	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/keys"
	"github.com/agentstation/csvsync/pkg/logging"
	"github.com/agentstation/csvsync/pkg/reconciler"
	"github.com/agentstation/csvsync/pkg/tabular"
)

func parse(t *testing.T, name string, lines ...string) *tabular.File {
	t.Helper()
	f, err := tabular.Parse(name, []byte(strings.Join(lines, "\r\n")))
	require.NoError(t, err)
	return f
}

func newClient(t *testing.T, opts ...Option) Client {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func TestDeleteWorkflow(t *testing.T) {
	ctx := context.Background()
	base := parse(t, "base.csv", "id,name", `1,"Smith, John"`, "2,Ann", ` 3 ,'Bo'`)

	c := newClient(t, WithTrim(true))
	var removed []tabular.Record
	c.OnRecordRemoved(func(rec tabular.Record) { removed = append(removed, rec) })

	out, err := c.Delete(ctx, base, DeleteRequest{KeyColumn: "id", Identifiers: "2;\n9"})
	require.NoError(t, err)

	assert.Equal(t, "id,name\r\n1,\"Smith, John\"\r\n 3 ,'Bo'", out.Output.Text)
	assert.Equal(t, 2, out.Output.Replayed)
	assert.Equal(t, []string{"9"}, out.Result.NotFound)
	assert.Equal(t, []tabular.Record{{"id": "2", "name": "Ann"}}, removed)
}

func TestUpsertWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("original schema", func(t *testing.T) {
		base := parse(t, "base.csv", "id,name,city", `1,"Smith, John",Oslo`, "2,Ann,Rome")
		mods := parse(t, "mods.csv", "id,city", "2,Paris", "3,Lima")

		c := newClient(t)
		var updates [][2]tabular.Record
		var inserts []tabular.Record
		c.OnRecordUpdated(func(old, new tabular.Record) { updates = append(updates, [2]tabular.Record{old, new}) })
		c.OnRecordAdded(func(rec tabular.Record) { inserts = append(inserts, rec) })

		out, err := c.Upsert(ctx, base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)

		want := strings.Join([]string{
			"id,name,city",
			`1,"Smith, John",Oslo`,
			`2,"Ann",Paris`,
			"3,,Lima",
		}, "\r\n")
		assert.Equal(t, want, out.Output.Text)
		assert.Equal(t, 1, out.Output.Replayed)
		assert.Equal(t, 2, out.Output.Rebuilt)

		require.Len(t, updates, 1)
		assert.Equal(t, "Rome", updates[0][0]["city"])
		assert.Equal(t, "Paris", updates[0][1]["city"])
		assert.Len(t, inserts, 1)
	})

	t.Run("union schema rebuilds every row", func(t *testing.T) {
		base := parse(t, "base.csv", `"id","name"`, `"1","Ann"`)
		mods := parse(t, "mods.csv", "id,tag", "1,vip")

		out, err := newClient(t).Upsert(ctx, base, mods, UpsertRequest{KeyColumn: "id", Schema: reconciler.SchemaUnion})
		require.NoError(t, err)
		assert.Equal(t, "\"id\",\"name\",\"tag\"\r\n\"1\",\"Ann\",\"vip\"", out.Output.Text)
		assert.True(t, out.Result.SchemaChanged)
	})

	t.Run("unchanged merge is byte identical", func(t *testing.T) {
		lines := []string{"id,name", `1,"Smith, John"`, "2, spaced "}
		base := parse(t, "base.csv", lines...)
		mods := parse(t, "mods.csv", "id,name", "1,\"Smith, John\"")

		out, err := newClient(t).Upsert(ctx, base, mods, UpsertRequest{KeyColumn: "id"})
		require.NoError(t, err)
		assert.Equal(t, strings.Join(lines, "\r\n"), out.Output.Text)
		assert.False(t, out.Result.HasChanges())
	})

	t.Run("missing key column", func(t *testing.T) {
		base := parse(t, "base.csv", "id,name", "1,Ann")
		mods := parse(t, "mods.csv", "code,name", "1,Bo")
		_, err := newClient(t).Upsert(ctx, base, mods, UpsertRequest{KeyColumn: "id"})
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestQuotePreservation(t *testing.T) {
	ctx := context.Background()
	base := parse(t, "base.csv", "id,name", `1,"Smith, John"`)
	mods := parse(t, "mods.csv", "id,name", "1,O'Brien")

	out, err := newClient(t).Upsert(ctx, base, mods, UpsertRequest{KeyColumn: "id"})
	require.NoError(t, err)
	assert.Equal(t, "id,name\r\n1,\"O'Brien\"", out.Output.Text)

	base = parse(t, "base.csv", "id,a,b", `1,"x",'80s`, "2,y,z")
	mods = parse(t, "mods.csv", "id,b", "2,Bob")
	out, err = newClient(t).Upsert(ctx, base, mods, UpsertRequest{KeyColumn: "id"})
	require.NoError(t, err)

	back, err := tabular.Parse("back.csv", []byte(out.Output.Text))
	require.NoError(t, err)
	require.Len(t, back.Records, 2)
	assert.Equal(t, "'80s", back.Records[0]["b"])
	assert.Equal(t, "Bob", back.Records[1]["b"])
}

func TestCompareWorkflow(t *testing.T) {
	ctx := context.Background()
	base := parse(t, "base.csv", "id,v", "1,a", "2,b", "4,d")
	other := parse(t, "other.csv", "id,v", "2,b", "3,c", "4,e")

	t.Run("changeset", func(t *testing.T) {
		c := newClient(t)
		var removed []tabular.Record
		c.OnRecordRemoved(func(rec tabular.Record) { removed = append(removed, rec) })

		out, err := c.Compare(ctx, base, other, CompareRequest{KeyColumn: "id"})
		require.NoError(t, err)
		assert.Equal(t, []tabular.Record{{"id": "3", "v": "c"}}, out.Changeset.Added)
		assert.Equal(t, []tabular.Record{{"id": "1", "v": "a"}}, out.Changeset.Removed)
		assert.Equal(t, []tabular.Record{{"id": "4", "v": "e"}}, out.Changeset.Changed)
		assert.Nil(t, out.Export)
		assert.Len(t, removed, 1)
	})

	t.Run("export", func(t *testing.T) {
		out, err := newClient(t).Compare(ctx, base, other, CompareRequest{KeyColumn: "id", Export: true})
		require.NoError(t, err)
		require.NotNil(t, out.Export)
		want := strings.Join([]string{
			"change,id,v",
			"added,3,c",
			"changed,4,e",
			"removed,1,a",
		}, "\r\n")
		assert.Equal(t, want, out.Export.Text)
	})

	t.Run("apply strategy", func(t *testing.T) {
		out, err := newClient(t).Compare(ctx, base, other, CompareRequest{KeyColumn: "id", Apply: differ.ApplyAdditive, Export: true})
		require.NoError(t, err)
		assert.Empty(t, out.Changeset.Removed)
		assert.NotContains(t, out.Export.Text, "removed")
	})

	t.Run("case insensitive keys", func(t *testing.T) {
		b := parse(t, "b.csv", "id,v", "A,1")
		o := parse(t, "o.csv", "id,v", "a,1")
		out, err := newClient(t, WithKeys(keys.Config{CaseInsensitive: true})).Compare(ctx, b, o, CompareRequest{KeyColumn: "id"})
		require.NoError(t, err)
		assert.True(t, out.Changeset.IsEmpty())
	})
}

func TestChangeColumn(t *testing.T) {
	assert.Equal(t, "change", changeColumn([]string{"id"}))
	assert.Equal(t, "__change", changeColumn([]string{"change", "_change"}))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	base := parse(t, "base.csv", "id", "1")

	c := newClient(t)
	_, err := c.Delete(ctx, base, DeleteRequest{KeyColumn: "id"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = c.Upsert(ctx, base, base, UpsertRequest{KeyColumn: "id"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = c.Compare(ctx, base, base, CompareRequest{KeyColumn: "id"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAndSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte("id;name\r\n1;'A;B'\r\n"), 0o600))

	c := newClient(t, WithComma(';'))
	f, err := c.Load(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "A;B", f.Records[0]["name"])

	out, err := c.Delete(ctx, f, DeleteRequest{KeyColumn: "id"})
	require.NoError(t, err)

	path := filepath.Join(dir, "nested", "out.csv")
	require.NoError(t, c.Save(ctx, path, out.Output.Text))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id;name\r\n1;'A;B'", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be cleaned up")
}

func TestOptions(t *testing.T) {
	_, err := New(WithComma('"'))
	assert.Error(t, err)
	_, err = New(WithQuote('`'))
	assert.Error(t, err)
	_, err = New(WithDuplicatePolicy("oldest"))
	assert.Error(t, err)

	c, err := New(WithQuote('\''), WithDuplicatePolicy(keys.DuplicatesReject), WithCaseInsensitive(true))
	require.NoError(t, err)
	cfg := c.(*client).config
	assert.Equal(t, '\'', cfg.quote)
	assert.Equal(t, keys.DuplicatesReject, cfg.duplicates)
	assert.True(t, cfg.keys.CaseInsensitive)
}

func TestWorkflowLogging(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	base := parse(t, "base.csv", "id", "1", "2")

	_, err := newClient(t).Delete(ctx, base, DeleteRequest{KeyColumn: "id", Identifiers: "1"})
	require.NoError(t, err)
	tl.AssertContains(t, "Delete complete")
	tl.AssertContains(t, `"operation":"delete"`)
}

func TestInspect(t *testing.T) {
	f := parse(t, "in.csv", `id,"name"`, `1,"Ann"`, `2,"Bo"`, `1,"Cy"`, `,"Dee"`)

	info, err := Inspect(f, "", keys.Config{})
	require.NoError(t, err)
	assert.Equal(t, 4, info.Rows)
	assert.Equal(t, ",", info.Comma)
	require.Len(t, info.Columns, 2)
	assert.False(t, info.Columns[0].DataStyle.Quoted)
	assert.True(t, info.Columns[1].HeaderStyle.Quoted)
	assert.True(t, info.Columns[1].DataStyle.Quoted)
	assert.Empty(t, info.Duplicates)

	info, err = Inspect(f, "id", keys.Config{})
	require.NoError(t, err)
	assert.Equal(t, 2, info.Keyed)
	assert.Equal(t, 1, info.BlankKeys)
	assert.Equal(t, []keys.Duplicate{{Key: "1", Rows: []int{0, 2}}}, info.Duplicates)

	_, err = Inspect(f, "code", keys.Config{})
	assert.True(t, errors.IsValidationError(err))
}
