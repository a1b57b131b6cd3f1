package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	Reset()
	SetLevel(Warn)
	defer SetLevel(Info)
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	lines := Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "WARN  shown 2") {
		t.Fatalf("lines: %q", lines)
	}
}

func TestMirrorAndRing(t *testing.T) {
	Reset()
	var out bytes.Buffer
	SetOutput(&out)
	defer SetOutput(nil)
	for i := 0; i < maxLines+10; i++ {
		Errorf("line %d", i)
	}
	if n := len(Lines()); n != maxLines {
		t.Fatalf("ring size %d", n)
	}
	if !strings.Contains(Lines()[0], "line 10") {
		t.Fatalf("oldest not dropped: %q", Lines()[0])
	}
	if strings.Count(out.String(), "\n") != maxLines+10 {
		t.Fatalf("mirror missed lines")
	}
}
