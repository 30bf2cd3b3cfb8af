package registry

import (
	"testing"

	"github.com/vovakirdan/storekeeper/internal/core"
)

type stubGame struct {
	id    string
	level int
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

type levelGame struct{ stubGame }

func (g *levelGame) SelectLevel(n int) error {
	g.level = n
	return nil
}

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "zz-stub", Title: "Stub", Levels: 1}, func() Game { return &stubGame{id: "zz-stub"} })
	Register(GameInfo{ID: "zz-levels", Title: "Levels", Levels: 5}, func() Game { return &levelGame{stubGame{id: "zz-levels"}} })

	if !Exists("zz-stub") {
		t.Error("expected zz-stub to exist")
	}
	if Exists("zz-missing") {
		t.Error("expected zz-missing not to exist")
	}

	info, ok := Info("zz-levels")
	if !ok || info.Levels != 5 {
		t.Errorf("expected info with 5 levels, got %+v", info)
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("expected sorted list, got %s before %s", list[i-1].ID, list[i].ID)
		}
	}

	if _, err := Create("zz-missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	g, err := CreateAt("zz-levels", 3)
	if err != nil {
		t.Fatalf("CreateAt failed: %v", err)
	}
	if lg := g.(*levelGame); lg.level != 3 {
		t.Errorf("expected level 3, got %d", lg.level)
	}

	if _, err := CreateAt("zz-stub", 2); err == nil {
		t.Error("expected error for game without level selection")
	}
	if _, err := CreateAt("zz-stub", 0); err != nil {
		t.Errorf("expected level 0 to keep the default, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz-dup"}, func() Game { return &stubGame{id: "zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(GameInfo{ID: "zz-dup"}, func() Game { return &stubGame{id: "zz-dup"} })
}
