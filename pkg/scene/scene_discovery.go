package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnknownScene is returned when a scene name resolves to nothing
var ErrUnknownScene = errors.New("unknown scene")

// Built-in group name, listed ahead of file groups
const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete scene catalog
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Glass, diffuse and metal spheres on a large ground sphere",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "spheregrid",
		Name:        "Sphere Grid",
		Description: "Seeded field of small spheres around the feature spheres",
		Group:       builtInGroup,
		Type:        "builtin",
	},
}

// ListSceneFiles scans dir for *.json scene descriptions.
// A missing directory yields an empty list; unreadable files are skipped.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("stat scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		file, err := ReadSceneFile(filePath)
		if err != nil {
			core.Logger().Warn("skipping scene file", "path", filePath, "error", err)
			continue
		}
		id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		info := SceneInfo{
			ID:          id,
			Name:        file.Name,
			Description: file.Description,
			Group:       file.Group,
			Type:        "file",
			FilePath:    filePath,
		}
		if info.Name == "" {
			info.Name = titleCase(id)
		}
		if info.Group == "" {
			info.Group = "Scene Files"
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// Catalog returns both built-in and file scenes, grouped by category
func Catalog(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(append([]SceneInfo{}, builtInScenes...), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, info := range allScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtInGroup,
		Scenes: groupMap[builtInGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Create resolves a built-in scene name, a scene id found in dir, or a direct .json path
func Create(name, dir string) (*Scene, error) {
	switch name {
	case "default":
		return NewDefaultScene(), nil
	case "spheregrid":
		return NewSphereGridScene(42), nil
	case "":
		return nil, fmt.Errorf("%w: empty name", ErrUnknownScene)
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		if _, err := os.Stat(name); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
		}
		return LoadSceneFile(name)
	}

	if dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return LoadSceneFile(path)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
