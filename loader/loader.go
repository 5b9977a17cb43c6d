// Package loader reads a directory of content files into a content.Bundle.
// Lua files run in a sandboxed VM and declare records through constructors;
// YAML and JSON files hold category arrays directly.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/ashaether/content"
)

// collector accumulates Lua declarations during file execution.
type collector struct {
	bundle content.Bundle
}

// Load reads every .lua, .yaml, .yml and .json file in dir and merges them
// into one bundle. Data files are read first, then Lua files, each group in
// name order. The bundle is not validated.
func Load(dir string) (content.Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return content.Bundle{}, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var dataFiles, luaFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			dataFiles = append(dataFiles, e.Name())
		case ".lua":
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(dataFiles) == 0 && len(luaFiles) == 0 {
		return content.Bundle{}, fmt.Errorf("no content files found in %s", dir)
	}
	sort.Strings(dataFiles)
	sort.Strings(luaFiles)

	var b content.Bundle
	for _, f := range dataFiles {
		part, err := loadDataFile(filepath.Join(dir, f))
		if err != nil {
			return content.Bundle{}, fmt.Errorf("loading %s: %w", f, err)
		}
		b.Merge(part)
	}

	if len(luaFiles) > 0 {
		part, err := runLua(dir, luaFiles)
		if err != nil {
			return content.Bundle{}, err
		}
		b.Merge(part)
	}
	return b, nil
}

// Compile loads dir and validates the result.
func Compile(dir string) (*content.Parsed, error) {
	b, err := Load(dir)
	if err != nil {
		return nil, err
	}
	res := content.Validate(b)
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.Parsed, nil
}

func loadDataFile(path string) (content.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return content.Bundle{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var b content.Bundle
		if err := json.Unmarshal(data, &b); err != nil {
			return content.Bundle{}, fmt.Errorf("parsing JSON: %w", err)
		}
		return b, nil
	}
	return content.DecodeYAML(data)
}

func runLua(dir string, files []string) (content.Bundle, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return content.Bundle{}, fmt.Errorf("executing %s: %w", f, err)
		}
	}
	return coll.bundle, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach the filesystem or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
		tbl.RawSetString("random", lua.LNil)
	}
}
