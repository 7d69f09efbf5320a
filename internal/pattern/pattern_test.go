package pattern

import "testing"

func TestMatchesEmptyPatternAlwaysMatches(t *testing.T) {
	if !Matches("anything.txt", "", false, false, false) {
		t.Fatal("empty pattern should match everything")
	}
}

func TestMatchesSubstring(t *testing.T) {
	if !Matches("report-2024.csv", "2024", false, false, false) {
		t.Fatal("expected substring match")
	}
	if Matches("report-2024.csv", "2025", false, false, false) {
		t.Fatal("did not expect substring match")
	}
}

func TestMatchesSubstringCaseSensitivity(t *testing.T) {
	if Matches("Report.csv", "report", true, false, false) {
		t.Fatal("case-sensitive substring should not match different case")
	}
	if !Matches("Report.csv", "report", false, false, false) {
		t.Fatal("case-insensitive substring should match")
	}
}

func TestMatchesGlobStar(t *testing.T) {
	if !Matches("archive.tar.gz", "*.gz", false, true, false) {
		t.Fatal("expected *.gz to match archive.tar.gz")
	}
	if Matches("archive.tar", "*.gz", false, true, false) {
		t.Fatal("did not expect *.gz to match archive.tar")
	}
}

func TestMatchesGlobQuestionMark(t *testing.T) {
	if !Matches("log1.txt", "log?.txt", false, true, false) {
		t.Fatal("expected log?.txt to match log1.txt")
	}
	if Matches("log10.txt", "log?.txt", false, true, false) {
		t.Fatal("did not expect log?.txt to match log10.txt")
	}
}

func TestMatchesGlobCharClass(t *testing.T) {
	if !Matches("file-a.txt", "file-[abc].txt", false, true, false) {
		t.Fatal("expected character class to match")
	}
	if Matches("file-d.txt", "file-[abc].txt", false, true, false) {
		t.Fatal("did not expect character class to match")
	}
}

func TestMatchesGlobBraceAlternation(t *testing.T) {
	if !Matches("notes.md", "*.{md,txt}", false, true, false) {
		t.Fatal("expected brace alternation to match notes.md")
	}
	if !Matches("notes.txt", "*.{md,txt}", false, true, false) {
		t.Fatal("expected brace alternation to match notes.txt")
	}
	if Matches("notes.rst", "*.{md,txt}", false, true, false) {
		t.Fatal("did not expect brace alternation to match notes.rst")
	}
}

func TestMatchesRegexWinsOverGlob(t *testing.T) {
	if !Matches("file123", `^file\d+$`, false, true, true) {
		t.Fatal("expected regex to be used when both glob and regex are set")
	}
}

func TestMatchesInvalidRegexFailsClosed(t *testing.T) {
	if Matches("anything", "([", false, false, true) {
		t.Fatal("an invalid regex must never match")
	}
}
