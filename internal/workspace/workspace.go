package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"contour-compositor/internal/errs"
)

// FramePair joins one visualization frame with its mask for a single time
// index. Paths are absolute; the pair is immutable once resolved.
type FramePair struct {
	Index         int
	Visualization string
	Mask          string
}

// Workspace is the resolved per-video folder: an ordered, index-aligned list
// of frame pairs. Resolution happens once per run; iteration is restartable
// because the pair list is a plain slice.
type Workspace struct {
	Name  string
	Dir   string
	Pairs []FramePair
}

// Layout names the two subfolders a workspace must expose.
type Layout struct {
	VisualizationDir string
	MaskDir          string
}

func DefaultLayout() Layout {
	return Layout{
		VisualizationDir: filepath.Join("visualization", "davis"),
		MaskDir:          "masks",
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

var frameIndexPattern = regexp.MustCompile(`(\d+)`)

// Resolve locates the workspace for a source video under root and builds the
// keyed join between visualization frames and masks. Frames and masks are
// matched by the numeric index embedded in their filenames, never by sort
// position; any index present on one side only is a configuration error.
func Resolve(root, videoPath string, layout Layout) (*Workspace, error) {
	name := BaseName(videoPath)

	dir := filepath.Join(root, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errs.Newf(errs.Configuration, "workspace folder for %q does not exist", name).WithPath(dir)
	}

	visualizations, err := indexedImages(filepath.Join(dir, layout.VisualizationDir))
	if err != nil {
		return nil, err
	}
	masks, err := indexedImages(filepath.Join(dir, layout.MaskDir))
	if err != nil {
		return nil, err
	}

	if len(visualizations) == 0 {
		return nil, errs.New(errs.Configuration, "workspace contains no visualization frames").WithPath(dir)
	}
	if len(masks) == 0 {
		return nil, errs.New(errs.Configuration, "workspace contains no masks").WithPath(dir)
	}
	if len(visualizations) != len(masks) {
		return nil, errs.Newf(errs.Configuration,
			"frame count mismatch: %d visualization frames vs %d masks",
			len(visualizations), len(masks)).WithPath(dir)
	}

	pairs := make([]FramePair, 0, len(visualizations))
	for index, visPath := range visualizations {
		maskPath, ok := masks[index]
		if !ok {
			return nil, errs.Newf(errs.Configuration,
				"no mask for frame index %d", index).WithPath(visPath).WithIndex(index)
		}
		pairs = append(pairs, FramePair{Index: index, Visualization: visPath, Mask: maskPath})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Index < pairs[j].Index })

	return &Workspace{Name: name, Dir: dir, Pairs: pairs}, nil
}

// BaseName strips directory and extension from a video path, yielding the
// workspace folder name and the stem of the output filename.
func BaseName(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// indexedImages lists the image files of one subfolder keyed by the frame
// index parsed from each filename.
func indexedImages(dir string) (map[int]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrap(errs.Configuration, err, "workspace subfolder missing or unreadable").WithPath(dir)
	}

	files := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		index, err := parseFrameIndex(name)
		if err != nil {
			return nil, errs.Wrap(errs.Configuration, err, "cannot determine frame index").
				WithPath(filepath.Join(dir, name))
		}
		if existing, dup := files[index]; dup {
			return nil, errs.Newf(errs.Configuration,
				"duplicate frame index %d (%s and %s)", index, filepath.Base(existing), name).
				WithPath(dir).WithIndex(index)
		}
		files[index] = filepath.Join(dir, name)
	}

	return files, nil
}

// parseFrameIndex extracts the trailing digit run from a filename stem, so
// both "00042.png" and "frame_42.jpg" map to index 42.
func parseFrameIndex(name string) (int, error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	matches := frameIndexPattern.FindAllString(stem, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("filename %q contains no frame index", name)
	}
	return strconv.Atoi(matches[len(matches)-1])
}
