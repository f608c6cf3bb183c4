package team

import "testing"

func testDirectory() *Directory {
	return NewDirectory([]Team{
		{ID: 19, Name: "St Louis Blues"},
		{ID: 54, Name: "Vegas Golden Knights"},
		{ID: 59, Name: "Utah Hockey Club"},
	})
}

func TestDirectory_IDByName_Exact(t *testing.T) {
	t.Parallel()

	d := testDirectory()
	id, ok := d.IDByName("St Louis Blues")
	if !ok || id != 19 {
		t.Fatalf("exact lookup: got id=%d ok=%t", id, ok)
	}
}

func TestDirectory_IDByName_CaseInsensitiveFallback(t *testing.T) {
	t.Parallel()

	d := testDirectory()
	id, ok := d.IDByName("utah hockey club")
	if !ok || id != 59 {
		t.Fatalf("casefold lookup: got id=%d ok=%t", id, ok)
	}
}

func TestDirectory_IDByName_Miss(t *testing.T) {
	t.Parallel()

	d := testDirectory()
	if _, ok := d.IDByName("Hartford Whalers"); ok {
		t.Fatal("expected lookup miss for unknown team")
	}
}

func TestNewDirectory_SkipsInvalidEntries(t *testing.T) {
	t.Parallel()

	d := NewDirectory([]Team{
		{ID: 0, Name: "No ID"},
		{ID: 12, Name: ""},
		{ID: 19, Name: "St Louis Blues"},
	})
	if d.Len() != 1 {
		t.Fatalf("expected 1 valid entry, got %d", d.Len())
	}
	if name, ok := d.NameByID(19); !ok || name != "St Louis Blues" {
		t.Fatalf("unexpected reverse lookup: %q %t", name, ok)
	}
}
