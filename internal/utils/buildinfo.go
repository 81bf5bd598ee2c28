package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	develBuildVersion  = "(devel)"
	gitExecutableName  = "git"
	errorGitNotFound   = ".git directory not found in or above %s"
	errorAbsoluteStart = "failed to get absolute path for %s: %w"
)

// Version is set at link time with -ldflags "-X github.com/temirov/ctxtree/internal/utils.Version=v1.2.3".
var Version string

// GetApplicationVersion reports the linked version, then the module version from
// build info, then the output of git describe in the enclosing repository.
func GetApplicationVersion() string {
	if strings.TrimSpace(Version) != "" {
		return strings.TrimSpace(Version)
	}

	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}

	repositoryDirectory, lookupError := findGitDirectory(".")
	if lookupError != nil || repositoryDirectory == "" {
		return unknownVersion
	}
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		// #nosec G204
		describeCommand := exec.Command(gitExecutableName, arguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}

// findGitDirectory returns the closest directory at or above startDirectory that contains .git.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", fmt.Errorf(errorAbsoluteStart, startDirectory, errorAbsolute)
	}

	for currentDirectory := absoluteStartDirectory; ; {
		fileInformation, errorStat := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf(errorGitNotFound, absoluteStartDirectory)
}
