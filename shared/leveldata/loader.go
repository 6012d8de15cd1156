package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/burrow/shared/floorgraph"
)

// ErrBadLevel is returned for level files whose content cannot form a floor graph.
var ErrBadLevel = errors.New("bad level")

// LoadFloorData parses a TMX file into floors and spawns. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func LoadFloorData(fsys fs.FS, tmxPath string) (*FloorData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &FloorData{
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
	}
	flipY := func(y float64) float64 { return float64(data.MapHeight) - y }

	// First pass: geometry, so object references can be resolved afterwards.
	var floorObjects []*tiled.Object
	ids := make(map[uint32]floorgraph.FloorID)
	for _, og := range levelMap.ObjectGroups {
		if og.Name != FloorsGroup {
			continue
		}
		for _, o := range og.Objects {
			floor, err := floorFromObject(o, flipY)
			if err != nil {
				return nil, err
			}
			ids[o.ID] = floorgraph.FloorID(len(data.Floors))
			data.Floors = append(data.Floors, floor)
			data.ObjectIDs = append(data.ObjectIDs, o.ID)
			floorObjects = append(floorObjects, o)
		}
	}

	resolve := func(o *tiled.Object, prop string) (floorgraph.FloorID, error) {
		raw := strings.TrimSpace(o.Properties.GetString(prop))
		if raw == "" || raw == "0" {
			return floorgraph.NoFloor, nil
		}
		return lookup(ids, raw, o.ID, prop)
	}

	// Second pass: neighbors and jump routes.
	for i, o := range floorObjects {
		f := &data.Floors[i]
		links := []struct {
			prop string
			dst  *floorgraph.FloorID
		}{
			{propLeftWalk, &f.LeftWalking},
			{propRightWalk, &f.RightWalking},
			{propLeftDig, &f.LeftDigging},
			{propRightDig, &f.RightDigging},
		}
		for _, l := range links {
			id, err := resolve(o, l.prop)
			if err != nil {
				return nil, err
			}
			*l.dst = id
		}

		jumps, err := parseJumps(ids, o)
		if err != nil {
			return nil, err
		}
		f.Jumps = jumps
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != SpawnGroup {
			continue
		}
		for _, o := range og.Objects {
			spawn := AgentSpawn{
				Position:   floorgraph.Position2{X: o.X, Y: flipY(o.Y)},
				Difficulty: o.Properties.GetInt(propDifficulty),
			}
			if spawn.Floor, err = resolve(o, propFloor); err != nil {
				return nil, err
			}
			if spawn.Patrol, err = parsePatrol(ids, o); err != nil {
				return nil, err
			}
			data.Spawns = append(data.Spawns, spawn)
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.SliceStable(data.Spawns, func(i, j int) bool {
		return data.Spawns[i].Position.X < data.Spawns[j].Position.X
	})

	return data, nil
}

// floorFromObject reads a four point polygon drawn clockwise from the top-left corner.
func floorFromObject(o *tiled.Object, flipY func(float64) float64) (floorgraph.Floor, error) {
	if len(o.Polygons) != 1 || o.Polygons[0].Points == nil || len(*o.Polygons[0].Points) != 4 {
		return floorgraph.Floor{}, fmt.Errorf("%w: floor object %d must be a polygon with 4 points", ErrBadLevel, o.ID)
	}
	pts := *o.Polygons[0].Points
	corner := func(i int) (float64, float64) {
		return o.X + pts[i].X, flipY(o.Y + pts[i].Y)
	}
	x1, y1 := corner(0)
	x2, y2 := corner(1)
	x3, y3 := corner(2)
	x4, y4 := corner(3)
	return floorgraph.NewFloor(x1, y1, x2, y2, x3, y3, x4, y4), nil
}

func lookup(ids map[uint32]floorgraph.FloorID, raw string, owner uint32, prop string) (floorgraph.FloorID, error) {
	ref, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return floorgraph.NoFloor, fmt.Errorf("%w: object %d %s %q: %v", ErrBadLevel, owner, prop, raw, err)
	}
	id, ok := ids[uint32(ref)]
	if !ok {
		return floorgraph.NoFloor, fmt.Errorf("object %d %s: %w: object %d is not a floor",
			owner, prop, floorgraph.ErrInvalidFloorID, ref)
	}
	return id, nil
}

// parseJumps reads "<objectId>@<launchX>;..." into jump routes in authoring order.
func parseJumps(ids map[uint32]floorgraph.FloorID, o *tiled.Object) ([]floorgraph.JumpRoute, error) {
	raw := strings.TrimSpace(o.Properties.GetString(propJumps))
	if raw == "" {
		return nil, nil
	}

	var routes []floorgraph.JumpRoute
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		target, launch, ok := strings.Cut(part, "@")
		if !ok {
			return nil, fmt.Errorf("%w: object %d jump %q: want <object>@<x>", ErrBadLevel, o.ID, part)
		}
		id, err := lookup(ids, target, o.ID, propJumps)
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(launch), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: object %d jump %q: %v", ErrBadLevel, o.ID, part, err)
		}
		routes = append(routes, floorgraph.JumpRoute{Target: id, LaunchX: x})
	}
	return routes, nil
}

// parsePatrol reads "<objectId>,<objectId>,..." into waypoint floors.
func parsePatrol(ids map[uint32]floorgraph.FloorID, o *tiled.Object) ([]floorgraph.FloorID, error) {
	raw := strings.TrimSpace(o.Properties.GetString(propPatrol))
	if raw == "" {
		return nil, nil
	}

	var waypoints []floorgraph.FloorID
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := lookup(ids, part, o.ID, propPatrol)
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, id)
	}
	return waypoints, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads floor
// data for each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*FloorData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*FloorData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadFloorData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
