package framework

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
)

const mainModule = "module github.com/nypl-spacetime/hocr-detect-columns\n"

// findProjectRoot searches for the project root directory containing go.mod
func findProjectRoot(startDir string) string {
	dir := startDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			// Check if this go.mod declares the main module (not just requires it)
			content, err := os.ReadFile(goModPath)
			if err == nil && strings.HasPrefix(strings.TrimSpace(string(content))+"\n", mainModule) {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root directory
		}
		dir = parent
	}
	return ""
}

// Framework provides utilities for running e2e tests
type Framework struct {
	BinaryPath string
	Timeout    time.Duration
}

// TestCase represents a single e2e test case. Input is written to an hOCR
// file that is passed after Args. Keys are sent once the program started.
type TestCase struct {
	Name           string
	Input          string
	Args           []string
	Keys           string
	ExpectedOutput string
	Timeout        time.Duration
}

// TestResult represents the result of a test case
type TestResult struct {
	Name    string
	Passed  bool
	Error   string
	Output  string
	Elapsed time.Duration
}

// NewFramework creates a new e2e test framework
func NewFramework() *Framework {
	return &Framework{
		BinaryPath: "",
		Timeout:    5 * time.Second,
	}
}

// SetBinaryPath sets the path to the detect-columns binary
func (f *Framework) SetBinaryPath(path string) {
	f.BinaryPath = path
}

// BuildBinary builds the detect-columns binary for testing
func (f *Framework) BuildBinary() error {
	if f.BinaryPath != "" {
		return nil // Already set
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	projectRoot := findProjectRoot(wd)
	if projectRoot == "" {
		return fmt.Errorf("could not find project root directory from %s", wd)
	}

	buildDir := filepath.Join(projectRoot, "build")
	binaryPath := filepath.Join(buildDir, "detect-columns")

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/detect-columns")
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to build binary: %w, output: %s", err, string(output))
	}

	f.BinaryPath = binaryPath
	return nil
}

// RunTest executes a single test case
func (f *Framework) RunTest(testCase TestCase) TestResult {
	start := time.Now()
	result := TestResult{
		Name:   testCase.Name,
		Passed: false,
	}
	fail := func(format string, args ...any) TestResult {
		result.Error = fmt.Sprintf(format, args...)
		result.Elapsed = time.Since(start)
		return result
	}

	if err := f.BuildBinary(); err != nil {
		return fail("failed to build binary: %v", err)
	}

	// isolates the run from the user's config and log files
	home, err := os.MkdirTemp("", "detect-columns-test-*")
	if err != nil {
		return fail("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(home)

	args := testCase.Args
	if testCase.Input != "" {
		inputPath := filepath.Join(home, "page.hocr")
		if err := os.WriteFile(inputPath, []byte(testCase.Input), 0o644); err != nil {
			return fail("failed to write input file: %v", err)
		}
		args = append(append([]string{}, args...), inputPath)
	}

	cmd := exec.Command(f.BinaryPath, args...)
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(home, "config"),
		"XDG_STATE_HOME="+filepath.Join(home, "state"),
	)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fail("failed to start command: %v", err)
	}
	defer ptmx.Close()

	// Wait for program initialization
	time.Sleep(200 * time.Millisecond)

	if testCase.Keys != "" {
		if _, err := ptmx.Write([]byte(testCase.Keys)); err != nil {
			return fail("failed to send keys: %v", err)
		}
	}

	timeout := testCase.Timeout
	if timeout == 0 {
		timeout = f.Timeout
	}
	timeoutCh := time.After(timeout)

	matchCh := make(chan bool)
	outputCh := make(chan string)

	go func() {
		reader := bufio.NewReader(ptmx)
		var output strings.Builder

		for {
			select {
			case <-timeoutCh:
				outputCh <- output.String()
				return
			default:
				b, err := reader.ReadByte()
				if err != nil {
					if err != io.EOF {
						result.Error = fmt.Sprintf("error reading output: %v", err)
					}
					outputCh <- output.String()
					return
				}

				output.WriteByte(b)

				if strings.Contains(output.String(), testCase.ExpectedOutput) {
					matchCh <- true
					outputCh <- output.String()
					return
				}
			}
		}
	}()

	select {
	case <-matchCh:
		result.Passed = true
		result.Output = <-outputCh
	case output := <-outputCh:
		if result.Error == "" {
			result.Error = "output ended without the expected text"
		}
		result.Output = output
	case <-timeoutCh:
		result.Error = "test timed out"
		// unblocks the reader
		_ = cmd.Process.Kill()
		_ = ptmx.Close()
		result.Output = <-outputCh
	}

	result.Elapsed = time.Since(start)
	return result
}

// RunTests executes multiple test cases
func (f *Framework) RunTests(testCases []TestCase) []TestResult {
	results := make([]TestResult, len(testCases))
	for i, testCase := range testCases {
		fmt.Printf("Running test: %s\n", testCase.Name)
		results[i] = f.RunTest(testCase)
		if results[i].Passed {
			fmt.Printf("PASS %s (%.2fs)\n", testCase.Name, results[i].Elapsed.Seconds())
		} else {
			fmt.Printf("FAIL %s (%.2fs): %s\n", testCase.Name, results[i].Elapsed.Seconds(), results[i].Error)
		}
	}
	return results
}

// PrintSummary prints a summary of test results
func (f *Framework) PrintSummary(results []TestResult) {
	passed := 0
	total := len(results)

	fmt.Println("\n=== Test Summary ===")
	for _, result := range results {
		if result.Passed {
			passed++
			fmt.Printf("PASS %s\n", result.Name)
		} else {
			fmt.Printf("FAIL %s: %s\n", result.Name, result.Error)
		}
	}

	fmt.Printf("\nTotal: %d, Passed: %d, Failed: %d\n", total, passed, total-passed)
}
