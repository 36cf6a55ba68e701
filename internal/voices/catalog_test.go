package voices

import "testing"

func TestDefaultIsInCatalog(t *testing.T) {
	v, ok := Find(DefaultVoiceID)
	if !ok {
		t.Fatalf("default voice %q not in catalog", DefaultVoiceID)
	}
	if v.ID != DefaultVoiceID {
		t.Fatalf("Find(%q).ID = %q", DefaultVoiceID, v.ID)
	}
	if Default().ID != DefaultVoiceID {
		t.Fatalf("Default().ID = %q, want %q", Default().ID, DefaultVoiceID)
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	v, ok := Find("  Stella ")
	if !ok {
		t.Fatalf("Find(\"  Stella \") not found")
	}
	if v.Model != "aura-stella-en" {
		t.Fatalf("stella model = %q", v.Model)
	}

	if _, ok := Find("nonexistent"); ok {
		t.Fatalf("Find(nonexistent) should not match")
	}
}

func TestCatalogEntriesComplete(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatalf("catalog is empty")
	}
	seen := map[string]bool{}
	for _, v := range all {
		if v.ID == "" || v.Name == "" || v.Gender == "" || v.Provider == "" || v.Model == "" {
			t.Fatalf("incomplete catalog entry: %+v", v)
		}
		if seen[v.ID] {
			t.Fatalf("duplicate voice id %q", v.ID)
		}
		seen[v.ID] = true
	}
}

func TestRecommendedSubsetOfCatalog(t *testing.T) {
	for _, v := range Recommended() {
		if _, ok := Find(v.ID); !ok {
			t.Fatalf("recommended voice %q missing from catalog", v.ID)
		}
	}
}
