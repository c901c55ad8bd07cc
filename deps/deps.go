package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// check looks binary up in PATH (or as a path) and reports it as name when missing.
func check(name, binary, url string) error {
	if binary == "" {
		binary = name
	}
	if _, err := exec.LookPath(binary); err != nil {
		return &DependencyError{
			Name:       binary,
			InstallURL: url,
		}
	}
	return nil
}

// CheckMpv checks if the mpv binary is installed and available in PATH
func CheckMpv(binary string) error {
	return check("mpv", binary, MpvInstallURL)
}

// CheckFfmpeg checks if the ffmpeg binary is installed and available in PATH
func CheckFfmpeg(binary string) error {
	return check("ffmpeg", binary, FfmpegInstallURL)
}

// CheckAll checks both binaries and returns a slice of errors for missing ones
func CheckAll(mpvBinary, ffmpegBinary string) []error {
	var errors []error

	if err := CheckMpv(mpvBinary); err != nil {
		errors = append(errors, err)
	}

	if err := CheckFfmpeg(ffmpegBinary); err != nil {
		errors = append(errors, err)
	}

	return errors
}
