package pointid

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestForLink(t *testing.T) {
	id1 := ForLink("https://finviz.com/news/1")
	id2 := ForLink("https://finviz.com/news/1")
	if id1 != id2 {
		t.Errorf("same link should give same ID: %q vs %q", id1, id2)
	}
	if _, err := uuid.Parse(id1); err != nil {
		t.Errorf("ID should be a valid UUID: %q (%v)", id1, err)
	}
}

func TestForLink_differentLinks(t *testing.T) {
	if ForLink("https://a/1") == ForLink("https://a/2") {
		t.Error("different links should give different IDs")
	}
}

func TestForLink_isMD5Hex(t *testing.T) {
	link := "https://news.google.com/articles/abc"
	sum := md5.Sum([]byte(link))
	want := hex.EncodeToString(sum[:])
	got := strings.ReplaceAll(ForLink(link), "-", "")
	if got != want {
		t.Errorf("ForLink digits = %s, want md5 %s", got, want)
	}
}

func TestForLink_empty(t *testing.T) {
	// md5("") = d41d8cd98f00b204e9800998ecf8427e
	if got := ForLink(""); got != "d41d8cd9-8f00-b204-e980-0998ecf8427e" {
		t.Errorf("ForLink(\"\") = %s", got)
	}
}
