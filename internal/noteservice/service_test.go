package noteservice

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/parser"
	"github.com/starford/laguz/internal/props"
	"github.com/starford/laguz/internal/storage"
	"github.com/starford/laguz/internal/testutil"
)

func testService(t *testing.T) (*Service, storage.Provider) {
	t.Helper()
	db := testutil.TestDB(t)
	_, store := testutil.TestVault(t)
	return NewService(store, db, parser.New()), store
}

func TestCreateNote_ParsesProperties(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "book.md", []byte("# Mi Libro\n[autor::@Cervantes] [paginas::500]"))
	if err != nil {
		t.Fatal(err)
	}
	if len(note.Properties) != 2 {
		t.Fatalf("properties = %d, want 2", len(note.Properties))
	}
	if note.Properties[0].Key != "autor" || note.Properties[0].Value.Kind != props.KindLink {
		t.Errorf("first property = %+v", note.Properties[0])
	}
	if note.Properties[1].Value.Number != 500 {
		t.Errorf("paginas = %+v", note.Properties[1].Value)
	}
}

func TestSetProperty_RewritesAndReindexes(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "n.md", []byte("Estado: [estado::leyendo]")); err != nil {
		t.Fatal(err)
	}

	note, err := svc.SetProperty(ctx, "n.md", 0, "terminado")
	if err != nil {
		t.Fatal(err)
	}
	if note.Content != "Estado: [estado::terminado]" {
		t.Errorf("content = %q", note.Content)
	}

	data, _ := store.Read("n.md")
	if string(data) != "Estado: [estado::terminado]" {
		t.Errorf("on disk = %q", data)
	}

	rows, err := svc.QueryProperties(ctx, "estado", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Value != "terminado" {
		t.Errorf("indexed rows = %+v", rows)
	}
}

func TestSetProperty_FrontmatterOffsets(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	content := "---\ntitle: Libro\n---\n\n[estado::leyendo]"
	if _, err := svc.CreateNote(ctx, "fm.md", []byte(content)); err != nil {
		t.Fatal(err)
	}

	// Offsets from ListProperties span the full file, frontmatter included,
	// so replacing by index must not clobber the YAML block.
	note, err := svc.SetProperty(ctx, "fm.md", 0, "terminado")
	if err != nil {
		t.Fatal(err)
	}
	want := "---\ntitle: Libro\n---\n\n[estado::terminado]"
	if note.Content != want {
		t.Errorf("content = %q, want %q", note.Content, want)
	}
	if note.Title != "Libro" {
		t.Errorf("title = %q", note.Title)
	}
}

func TestSetProperty_IndexOutOfRange(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "n.md", []byte("[a::1]")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetProperty(ctx, "n.md", 1, "x"); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
	if _, err := svc.SetProperty(ctx, "n.md", -1, "x"); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("negative index err = %v, want ErrInvalid", err)
	}
}

func TestSetProperty_NoteMissing(t *testing.T) {
	svc, _ := testService(t)
	if _, err := svc.SetProperty(context.Background(), "nope.md", 0, "x"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddProperty(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "n.md", []byte("uno\ndos")); err != nil {
		t.Fatal(err)
	}

	note, err := svc.AddProperty(ctx, "n.md", 1, "estado", "nuevo")
	if err != nil {
		t.Fatal(err)
	}
	if note.Content != "uno [estado::nuevo]\ndos" {
		t.Errorf("content = %q", note.Content)
	}
}

func TestAddProperty_LineZeroTargetsLastLine(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "n.md", []byte("uno\ndos\ntres")); err != nil {
		t.Fatal(err)
	}

	note, err := svc.AddProperty(ctx, "n.md", 0, "k", "v")
	if err != nil {
		t.Fatal(err)
	}
	if note.Content != "uno\ndos\ntres [k::v]" {
		t.Errorf("content = %q", note.Content)
	}
}

func TestAddProperty_LineOutOfRange(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "n.md", []byte("solo")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddProperty(ctx, "n.md", 7, "k", "v"); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestOnPropertyChange_Callback(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	var gotPath, gotKey string
	svc.OnPropertyChange(func(path, key string) {
		gotPath, gotKey = path, key
	})

	if _, err := svc.CreateNote(ctx, "n.md", []byte("[estado::leyendo]")); err != nil {
		t.Fatal(err)
	}
	if gotPath != "" {
		t.Errorf("create should not fire property callback, got %q", gotPath)
	}

	if _, err := svc.SetProperty(ctx, "n.md", 0, "terminado"); err != nil {
		t.Fatal(err)
	}
	if gotPath != "n.md" || gotKey != "estado" {
		t.Errorf("callback = (%q, %q)", gotPath, gotKey)
	}

	if _, err := svc.AddProperty(ctx, "n.md", 1, "precio", "20"); err != nil {
		t.Fatal(err)
	}
	if gotKey != "precio" {
		t.Errorf("callback key = %q, want precio", gotKey)
	}
}

func TestListProperties_DocumentOrder(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateNote(ctx, "n.md", []byte("[b::2]\n[a::1]")); err != nil {
		t.Fatal(err)
	}

	list, err := svc.ListProperties(ctx, "n.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Key != "b" || list[1].Key != "a" {
		t.Errorf("properties = %+v", list)
	}
}
