package dumb

import (
	"bytes"
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

func runSource(t testing.TB, source string) (string, *Session, error) {
	t.Helper()
	var out bytes.Buffer
	engine := MustNewEngine(Config{Stdout: &out})
	session := engine.NewSession()
	err := session.Run(context.Background(), source)
	return out.String(), session, err
}

func mustRun(t testing.TB, source string) (string, *Session) {
	t.Helper()
	out, session, err := runSource(t, source)
	if err != nil {
		t.Fatalf("run %q: %v", source, err)
	}
	return out, session
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "addition", source: "3 4 + print\n", want: "7\n"},
		{name: "dup multiply", source: "5 dup * print\n", want: "25\n"},
		{name: "swap", source: "1 2 swap print print\n", want: "1\n2\n"},
		{name: "over", source: "1 2 over print print print\n", want: "1\n2\n1\n"},
		{name: "subtraction order", source: "10 3 - print\n", want: "7\n"},
		{name: "division order", source: "20 6 / print\n", want: "3\n"},
		{name: "remainder", source: "20 6 % print\n", want: "2\n"},
		{name: "remainder follows dividend sign", source: "0 7 - 3 % print\n", want: "-1\n"},
		{name: "loop", source: "3 loop 10 print end\n", want: "10\n10\n10\n"},
		{name: "assignment", source: "5 -> x int end 2 x + print\n", want: "7\n"},
		{name: "reassignment", source: "5 -> x int end 9 -> x int end x print\n", want: "9\n"},
		{name: "stray end is ignored", source: "end 1 print\n", want: "1\n"},
		{name: "leading zeros", source: "007 print\n", want: "7\n"},
		{name: "semicolon separated", source: "1;2;+;print;", want: "3\n"},
		{name: "unterminated trailing print", source: "3 4 + print", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := mustRun(t, tt.source)
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestAdditionLeavesStackEmpty(t *testing.T) {
	out, session := mustRun(t, "3 4 + print\n")
	if out != "7\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(session.Stack()) != 0 {
		t.Fatalf("expected empty stack, got %v", session.Stack())
	}
}

func TestLoopBodySharesStackAcrossIterations(t *testing.T) {
	_, session := mustRun(t, "0 4 loop 1 + end\n")
	if got := session.Stack(); !slices.Equal(got, []int64{4}) {
		t.Fatalf("unexpected stack %v", got)
	}

	_, session = mustRun(t, "3 loop 7 end\n")
	if got := session.Stack(); !slices.Equal(got, []int64{7, 7, 7}) {
		t.Fatalf("expected pushes to accumulate, got %v", got)
	}
}

func TestLoopNonPositiveCountSkipsBody(t *testing.T) {
	out, session := mustRun(t, "0 loop 1 print end 0 2 - loop 1 print end\n")
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if len(session.Stack()) != 0 {
		t.Fatalf("expected counts to be consumed, got %v", session.Stack())
	}
}

func TestLoopAssignmentVisibleAfterLoop(t *testing.T) {
	out, _ := mustRun(t, "0 -> total int end 5 loop total 2 + -> total int end end total print\n")
	if out != "10\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNestedRegionsMatchOutermostEnd(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "nested loops", source: "2 loop 3 loop 1 print end end\n", want: strings.Repeat("1\n", 6)},
		{name: "loop then sibling loop", source: "2 loop 1 print end 1 loop 2 print end\n", want: "1\n1\n2\n"},
		{name: "assignment inside loop", source: "3 loop 4 -> x int end x print end\n", want: "4\n4\n4\n"},
		{name: "loop after nested region", source: "1 loop 2 loop 5 print end 6 print end 7 print\n", want: "5\n5\n6\n7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := mustRun(t, tt.source)
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestUnterminatedRegionIsSilentlySkipped(t *testing.T) {
	out, session := mustRun(t, "1 print 3 loop 2 print\n")
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if got := session.Stack(); !slices.Equal(got, []int64{3}) {
		t.Fatalf("expected loop count to stay on the stack, got %v", got)
	}

	out, _ = mustRun(t, "5 -> x int\n")
	if out != "" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCollectingRegionDoesNotInterpretTokens(t *testing.T) {
	out, session := mustRun(t, "0 loop bogus + print end 1 print\n")
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(session.Stack()) != 0 {
		t.Fatalf("unexpected stack %v", session.Stack())
	}
}

func TestDupDropIsIdentity(t *testing.T) {
	for _, prefix := range []string{"1", "1 2", "5 6 7 8"} {
		_, before := mustRun(t, prefix+"\n")
		_, after := mustRun(t, prefix+" dup drop\n")
		if !slices.Equal(before.Stack(), after.Stack()) {
			t.Fatalf("dup drop changed %v into %v", before.Stack(), after.Stack())
		}
	}
}

func TestStackUnderflow(t *testing.T) {
	tests := []struct {
		source string
		word   string
	}{
		{source: "print\n", word: "print"},
		{source: "dup\n", word: "dup"},
		{source: "drop\n", word: "drop"},
		{source: "1 swap\n", word: "swap"},
		{source: "1 over\n", word: "over"},
		{source: "1 +\n", word: "+"},
		{source: "1 -\n", word: "-"},
		{source: "*\n", word: "*"},
		{source: "1 /\n", word: "/"},
		{source: "1 %\n", word: "%"},
		{source: "loop end\n", word: "loop"},
		{source: "-> x int end\n", word: "assignment"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			_, _, err := runSource(t, tt.source)
			if !errors.Is(err, ErrStackUnderflow) {
				t.Fatalf("expected stack underflow, got %v", err)
			}
			var re *RuntimeError
			if !errors.As(err, &re) {
				t.Fatalf("expected RuntimeError, got %T", err)
			}
		})
	}
}

func TestArithmeticOverflow(t *testing.T) {
	maxInt := "9223372036854775807"
	tests := []struct {
		name   string
		source string
	}{
		{name: "max plus one", source: maxInt + " 1 +\n"},
		{name: "min minus one", source: "0 " + maxInt + " - 1 - 1 -\n"},
		{name: "multiplication", source: maxInt + " 2 *\n"},
		{name: "division by zero", source: "1 0 /\n"},
		{name: "min divided by minus one", source: "0 " + maxInt + " - 1 - 0 1 - /\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runSource(t, tt.source)
			if !errors.Is(err, ErrArithmeticOverflow) {
				t.Fatalf("expected overflow error, got %v", err)
			}
			if !strings.Contains(err.Error(), "exceeded the limits of i64") {
				t.Fatalf("unexpected message: %v", err)
			}
		})
	}
}

func TestRemainderSkipsOverflowCheck(t *testing.T) {
	maxInt := "9223372036854775807"
	_, session := mustRun(t, "0 "+maxInt+" - 1 - 0 1 - %\n")
	if got := session.Stack(); !slices.Equal(got, []int64{0}) {
		t.Fatalf("expected native remainder result 0, got %v", got)
	}

	_, _, err := runSource(t, "1 0 %\n")
	if !errors.Is(err, ErrRemainderFault) {
		t.Fatalf("expected remainder fault, got %v", err)
	}
	if errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("remainder must not report overflow")
	}
}

func TestArithmeticHelpersAtBounds(t *testing.T) {
	if got, err := addInt64(math.MaxInt64-1, 1); err != nil || got != math.MaxInt64 {
		t.Fatalf("add: got %d, %v", got, err)
	}
	if got, err := subInt64(math.MinInt64+1, 1); err != nil || got != math.MinInt64 {
		t.Fatalf("sub: got %d, %v", got, err)
	}
	if _, err := subInt64(0, math.MinInt64); err == nil {
		t.Fatalf("expected 0 - MinInt64 to overflow")
	}
	if _, err := mulInt64(math.MinInt64, -1); err == nil {
		t.Fatalf("expected MinInt64 * -1 to overflow")
	}
	if got, err := mulInt64(-3, 4); err != nil || got != -12 {
		t.Fatalf("mul: got %d, %v", got, err)
	}
	if got, err := divInt64(-7, 2); err != nil || got != -3 {
		t.Fatalf("div: got %d, %v", got, err)
	}
	if got, err := remInt64(math.MinInt64, -1); err != nil || got != 0 {
		t.Fatalf("rem: got %d, %v", got, err)
	}
	if _, err := remInt64(5, 0); err == nil || err.Error() != "integer divide by zero" {
		t.Fatalf("expected zero divisor fault, got %v", err)
	}
}

func TestUnknownTokenIsFatal(t *testing.T) {
	out, _, err := runSource(t, "1 print nope 2 print\n")
	if !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected unknown token error, got %v", err)
	}
	if out != "1\n" {
		t.Fatalf("expected output before the failure only, got %q", out)
	}
	var re *RuntimeError
	if !errors.As(err, &re) || re.Token != "nope" {
		t.Fatalf("expected failing token to be recorded, got %#v", err)
	}
	if !strings.Contains(err.Error(), `token unknown "nope"`) {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestNegativeLiteralIsUnknownToken(t *testing.T) {
	_, _, err := runSource(t, "-5 print\n")
	if !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected unknown token error, got %v", err)
	}
}

func TestOversizedLiteral(t *testing.T) {
	_, _, err := runSource(t, "9223372036854775808 print\n")
	if !errors.Is(err, ErrInvalidLiteral) {
		t.Fatalf("expected invalid literal error, got %v", err)
	}
}

func TestAssignmentValidation(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		kind    error
		message string
	}{
		{name: "too few", source: "1 -> x end\n", kind: ErrInvalidAssignment, message: "too few arguments"},
		{name: "empty", source: "1 -> end\n", kind: ErrInvalidAssignment, message: "too few arguments"},
		{name: "too many", source: "1 -> x int int end\n", kind: ErrInvalidAssignment, message: "too many arguments"},
		{name: "bad type", source: "1 -> x float end\n", kind: ErrInvalidAssignment, message: `invalid type "float"`},
		{name: "type checked before stack", source: "-> x float end\n", kind: ErrInvalidAssignment, message: "invalid type"},
		{name: "empty stack", source: "-> x int end\n", kind: ErrStackUnderflow, message: "no elements in the stack"},
		{name: "stack checked before identifier", source: "-> x_y int end\n", kind: ErrStackUnderflow, message: "no elements in the stack"},
		{name: "bad identifier", source: "1 -> x_y int end\n", kind: ErrInvalidAssignment, message: `identifier "x_y" is not a valid one`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runSource(t, tt.source)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("unexpected message: %v", err)
			}
		})
	}
}

func TestAssignmentAcceptsUnicodeIdentifier(t *testing.T) {
	out, session := mustRun(t, "4 -> café2 int end café2 print\n")
	if out != "4\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if names := session.Variables().Names(); !slices.Equal(names, []string{"café2"}) {
		t.Fatalf("unexpected declarations %v", names)
	}
}

func TestAssignmentAcceptsCombiningMarkIdentifier(t *testing.T) {
	name := "a\u0903"
	out, _ := mustRun(t, "4 -> "+name+" int end "+name+" print\n")
	if out != "4\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if isValidIdentifier("a+") || isValidIdentifier("x_1") {
		t.Fatalf("punctuation must not be accepted in identifiers")
	}
}

func TestSessionStatePersistsAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	session := MustNewEngine(Config{Stdout: &out}).NewSession()
	ctx := context.Background()

	if err := session.Run(ctx, "6 -> x int end 1\n"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := session.Run(ctx, "x + print\n"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if out.String() != "7\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	session.Reset()
	if len(session.Stack()) != 0 || session.Variables().Len() != 0 {
		t.Fatalf("expected reset session")
	}
}

func TestEngineExecuteUsesFreshSession(t *testing.T) {
	var out bytes.Buffer
	engine := MustNewEngine(Config{Stdout: &out})
	ctx := context.Background()
	if err := engine.Execute(ctx, "1 -> x int end\n"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	err := engine.Execute(ctx, "x print\n")
	if !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected variables not to leak between executions, got %v", err)
	}
}

func TestRuntimeErrorFramesAndCodeFrame(t *testing.T) {
	_, _, err := runSource(t, "2 loop 1 loop bad end end\n")
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	wantRegions := []string{regionLoop, regionLoop, regionScript}
	if len(re.Frames) != len(wantRegions) {
		t.Fatalf("unexpected frames %#v", re.Frames)
	}
	for i, region := range wantRegions {
		if re.Frames[i].Region != region {
			t.Fatalf("frame %d region = %q, want %q", i, re.Frames[i].Region, region)
		}
	}
	if re.Frames[0].Token != 0 || re.Frames[2].Token != 1 {
		t.Fatalf("unexpected frame positions %#v", re.Frames)
	}
	if !strings.Contains(re.CodeFrame, "--> token 0") || !strings.Contains(re.CodeFrame, "^^^") {
		t.Fatalf("unexpected code frame:\n%s", re.CodeFrame)
	}
	if !strings.Contains(err.Error(), "at <script> (token 1)") {
		t.Fatalf("unexpected rendering:\n%s", err.Error())
	}
}

func TestFormatTokenFrame(t *testing.T) {
	got := formatTokenFrame([]string{"1", "2", "bad", "+"}, 2)
	want := "  --> token 2\n   | 1 2 bad +\n   |     ^^^"
	if got != want {
		t.Fatalf("formatTokenFrame =\n%s\nwant\n%s", got, want)
	}
	if formatTokenFrame(nil, 0) != "" {
		t.Fatalf("expected empty frame for empty tokens")
	}
}

func TestNewEngineDefaults(t *testing.T) {
	engine := MustNewEngine(Config{})
	if got := engine.ConfigSummary(); got != "steps=10000000 recursion=256 stack=1048576" {
		t.Fatalf("unexpected summary %q", got)
	}
	if _, err := NewEngine(Config{RecursionLimit: -1}); err == nil {
		t.Fatalf("expected negative recursion limit to be rejected")
	}
}
