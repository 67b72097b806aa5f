package menu

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"party-site/internal/auth"
	"party-site/internal/gateway"
	"party-site/internal/models"
)

var errRemote = errors.New("remote rejected")

// fakeGateway records calls; embedding Unconfigured supplies the rest of the
// interface.
type fakeGateway struct {
	gateway.Unconfigured
	store           []models.MenuCategory // what ListMenu serves
	lists           int
	categoryInserts int
	itemInserts     int
	updates         int
	deletes         int
	failInsertItem  bool
	failUpdate      bool
	failDelete      bool
	nextID          int
}

func (f *fakeGateway) calls() int {
	return f.lists + f.categoryInserts + f.itemInserts + f.updates + f.deletes
}

func (f *fakeGateway) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeGateway) ListMenu(context.Context) ([]models.MenuCategory, error) {
	f.lists++
	out := make([]models.MenuCategory, len(f.store))
	for i, cat := range f.store {
		out[i] = cat
		out[i].Items = append([]models.MenuItem(nil), cat.Items...)
	}
	return out, nil
}

func (f *fakeGateway) InsertCategory(_ context.Context, title, iconKey string) (models.MenuCategory, error) {
	f.categoryInserts++
	return models.MenuCategory{ID: f.id("cat"), Title: title, IconKey: iconKey}, nil
}

func (f *fakeGateway) InsertItem(_ context.Context, categoryID string, item models.MenuItem) (models.MenuItem, error) {
	f.itemInserts++
	if f.failInsertItem {
		return models.MenuItem{}, errRemote
	}
	item.ID = f.id("item")
	return item, nil
}

func (f *fakeGateway) UpdateItem(_ context.Context, itemID string, field gateway.ItemField, value string) error {
	f.updates++
	if f.failUpdate {
		return errRemote
	}
	return nil
}

func (f *fakeGateway) DeleteItem(_ context.Context, itemID string) error {
	f.deletes++
	if f.failDelete {
		return errRemote
	}
	return nil
}

func adminGuard(t *testing.T) *auth.Guard {
	t.Helper()
	g := auth.NewGuard(auth.Config{User: "admin", Pass: "secret"})
	if err := g.Login("admin", "secret"); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestEnsureCategory(t *testing.T) {
	ctx := context.Background()
	fake := &fakeGateway{}
	c := NewController(fake, adminGuard(t))

	first, err := c.EnsureCategory(ctx, "Starters", "leaf")
	if err != nil {
		t.Fatalf("EnsureCategory() = %v", err)
	}
	second, err := c.EnsureCategory(ctx, "Starters", "leaf")
	if err != nil {
		t.Fatalf("second EnsureCategory() = %v", err)
	}
	if first != second {
		t.Errorf("ids differ: %q vs %q", first, second)
	}
	if fake.categoryInserts != 1 {
		t.Errorf("category inserts = %d, want 1 (idempotent)", fake.categoryInserts)
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("blank fields make zero gateway calls", func(t *testing.T) {
		fake := &fakeGateway{}
		c := NewController(fake, adminGuard(t))
		before := c.Categories()
		cases := [][2]string{{"", "desc"}, {"name", ""}, {"   ", "desc"}, {"name", "\t "}}
		for _, tc := range cases {
			if _, err := c.AddItem(ctx, CourseStarters, tc[0], tc[1], nil); !errors.Is(err, ErrEmptyFields) {
				t.Errorf("AddItem(%q, %q) = %v, want ErrEmptyFields", tc[0], tc[1], err)
			}
		}
		if fake.calls() != 0 {
			t.Errorf("gateway calls = %d, want 0", fake.calls())
		}
		if !reflect.DeepEqual(c.Categories(), before) {
			t.Error("local state changed on validation failure")
		}
	})

	t.Run("requires admin", func(t *testing.T) {
		fake := &fakeGateway{}
		c := NewController(fake, auth.NewGuard(auth.Config{User: "a", Pass: "b"}))
		if _, err := c.AddItem(ctx, CourseStarters, "Soup", "Hot.", nil); !errors.Is(err, ErrNotAdmin) {
			t.Errorf("AddItem() = %v, want ErrNotAdmin", err)
		}
		if fake.calls() != 0 {
			t.Errorf("gateway calls = %d, want 0", fake.calls())
		}
	})

	t.Run("creates the category lazily and appends the item", func(t *testing.T) {
		fake := &fakeGateway{}
		c := NewController(fake, adminGuard(t))
		item, err := c.AddItem(ctx, CourseDesserts, "Christmas Pudding", "With brandy butter.", []string{"V"})
		if err != nil {
			t.Fatalf("AddItem() = %v", err)
		}
		if item.ID == "" {
			t.Error("item has no server-assigned id")
		}
		cats := c.Categories()
		if len(cats) != 1 || cats[0].Title != "Desserts" || cats[0].IconKey != "cake" {
			t.Fatalf("categories = %+v, want one Desserts/cake", cats)
		}
		if len(cats[0].Items) != 1 || cats[0].Items[0].Name != "Christmas Pudding" {
			t.Errorf("items = %+v", cats[0].Items)
		}

		// A second item for the same course reuses the category.
		if _, err := c.AddItem(ctx, CourseDesserts, "Cheesecake", "Berry coulis.", nil); err != nil {
			t.Fatal(err)
		}
		if fake.categoryInserts != 1 {
			t.Errorf("category inserts = %d, want 1", fake.categoryInserts)
		}
		if got := len(c.Categories()[0].Items); got != 2 {
			t.Errorf("items = %d, want 2", got)
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		c := NewController(&fakeGateway{}, adminGuard(t))
		if _, err := c.AddItem(ctx, Course("supper"), "X", "Y", nil); err == nil {
			t.Error("AddItem() with unknown course succeeded")
		}
	})

	t.Run("failed item insert leaves items unchanged", func(t *testing.T) {
		fake := &fakeGateway{failInsertItem: true}
		c := NewController(fake, adminGuard(t))
		if _, err := c.AddItem(ctx, CourseMains, "Turkey", "Trimmings.", nil); !errors.Is(err, errRemote) {
			t.Fatalf("AddItem() = %v, want remote error", err)
		}
		cats := c.Categories()
		// The category round-tripped before the item failed, so it stays; no
		// item may have been applied.
		if len(cats) != 1 || len(cats[0].Items) != 0 {
			t.Errorf("categories = %+v, want one empty Main Courses", cats)
		}
	})
}

func TestEditItem(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, fake *fakeGateway) (*Controller, string) {
		t.Helper()
		c := NewController(fake, adminGuard(t))
		if _, err := c.AddItem(ctx, CourseStarters, "Soup", "Hot.", nil); err != nil {
			t.Fatal(err)
		}
		return c, c.Categories()[0].ID
	}

	t.Run("replaces the field locally after a successful update", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID := seed(t, fake)
		if err := c.EditItem(ctx, catID, 0, gateway.FieldName, "Winter Salad"); err != nil {
			t.Fatalf("EditItem() = %v", err)
		}
		if got := c.Categories()[0].Items[0].Name; got != "Winter Salad" {
			t.Errorf("name = %q, want Winter Salad", got)
		}
		if err := c.EditItem(ctx, catID, 0, gateway.FieldDescription, "Cold."); err != nil {
			t.Fatal(err)
		}
		if got := c.Categories()[0].Items[0].Description; got != "Cold." {
			t.Errorf("description = %q, want Cold.", got)
		}
	})

	t.Run("empty value is a no-op", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID := seed(t, fake)
		calls := fake.calls()
		if err := c.EditItem(ctx, catID, 0, gateway.FieldName, ""); err != nil {
			t.Fatalf("EditItem() = %v", err)
		}
		if fake.calls() != calls {
			t.Error("gateway called for a cancelled edit")
		}
	})

	t.Run("item without server id is a no-op", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID := seed(t, fake)
		// Force an unsaved item into the view.
		c.categories[0].Items[0].ID = ""
		calls := fake.calls()
		if err := c.EditItem(ctx, catID, 0, gateway.FieldName, "New"); err != nil {
			t.Fatalf("EditItem() = %v", err)
		}
		if fake.calls() != calls {
			t.Error("gateway called for an unsaved item")
		}
		if got := c.Categories()[0].Items[0].Name; got != "Soup" {
			t.Errorf("name = %q, want Soup", got)
		}
	})

	t.Run("failed update leaves the field unchanged", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID := seed(t, fake)
		fake.failUpdate = true
		if err := c.EditItem(ctx, catID, 0, gateway.FieldName, "New"); !errors.Is(err, errRemote) {
			t.Fatalf("EditItem() = %v, want remote error", err)
		}
		if got := c.Categories()[0].Items[0].Name; got != "Soup" {
			t.Errorf("name = %q, want Soup", got)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID := seed(t, fake)
		if err := c.EditItem(ctx, catID, 5, gateway.FieldName, "New"); err == nil {
			t.Error("EditItem() out of range succeeded")
		}
	})
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, fake *fakeGateway) (*Controller, string, []models.MenuItem) {
		t.Helper()
		c := NewController(fake, adminGuard(t))
		for _, name := range []string{"Soup", "Salad", "Bread"} {
			if _, err := c.AddItem(ctx, CourseStarters, name, "Tasty.", nil); err != nil {
				t.Fatal(err)
			}
		}
		cat := c.Categories()[0]
		return c, cat.ID, cat.Items
	}

	t.Run("removes the element at the index", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID, items := seed(t, fake)
		if err := c.DeleteItem(ctx, catID, items[1].ID, 1); err != nil {
			t.Fatalf("DeleteItem() = %v", err)
		}
		got := c.Categories()[0].Items
		if len(got) != 2 || got[0].Name != "Soup" || got[1].Name != "Bread" {
			t.Errorf("items after delete = %+v", got)
		}
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID, _ := seed(t, fake)
		calls := fake.calls()
		if err := c.DeleteItem(ctx, catID, "", 0); err != nil {
			t.Fatalf("DeleteItem() = %v", err)
		}
		if fake.calls() != calls {
			t.Error("gateway called for an absent item id")
		}
		if got := len(c.Categories()[0].Items); got != 3 {
			t.Errorf("items = %d, want 3", got)
		}
	})

	t.Run("failed delete leaves state unchanged", func(t *testing.T) {
		fake := &fakeGateway{}
		c, catID, items := seed(t, fake)
		fake.failDelete = true
		before := c.Categories()
		if err := c.DeleteItem(ctx, catID, items[0].ID, 0); !errors.Is(err, errRemote) {
			t.Fatalf("DeleteItem() = %v, want remote error", err)
		}
		if !reflect.DeepEqual(c.Categories(), before) {
			t.Error("local state changed on failed delete")
		}
	})
}

// A freshly constructed controller (no Load call, as when list reads are
// served from the cache) must still mutate against what the store already
// holds rather than an empty view.
func TestMutationsSyncFromStoreFirst(t *testing.T) {
	ctx := context.Background()

	seeded := func() *fakeGateway {
		return &fakeGateway{store: []models.MenuCategory{{
			ID:      "cat-starters",
			Title:   "Starters",
			IconKey: "leaf",
			Items:   []models.MenuItem{{ID: "item-soup", Name: "Soup", Description: "Hot."}},
		}}}
	}

	t.Run("add reuses the stored category", func(t *testing.T) {
		fake := seeded()
		c := NewController(fake, adminGuard(t))
		if _, err := c.AddItem(ctx, CourseStarters, "Salad", "Crisp.", nil); err != nil {
			t.Fatalf("AddItem() = %v", err)
		}
		if fake.categoryInserts != 0 {
			t.Errorf("category inserts = %d, want 0 (Starters already exists)", fake.categoryInserts)
		}
		cats := c.Categories()
		if len(cats) != 1 || len(cats[0].Items) != 2 {
			t.Fatalf("categories = %+v, want one Starters with 2 items", cats)
		}
	})

	t.Run("edit reaches the stored item", func(t *testing.T) {
		fake := seeded()
		c := NewController(fake, adminGuard(t))
		if err := c.EditItem(ctx, "cat-starters", 0, gateway.FieldName, "Broth"); err != nil {
			t.Fatalf("EditItem() = %v", err)
		}
		if got := c.Categories()[0].Items[0].Name; got != "Broth" {
			t.Errorf("name = %q, want Broth", got)
		}
	})

	t.Run("delete reaches the stored item", func(t *testing.T) {
		fake := seeded()
		c := NewController(fake, adminGuard(t))
		if err := c.DeleteItem(ctx, "cat-starters", "item-soup", 0); err != nil {
			t.Fatalf("DeleteItem() = %v", err)
		}
		if got := len(c.Categories()[0].Items); got != 0 {
			t.Errorf("items after delete = %d, want 0", got)
		}
		if fake.deletes != 1 {
			t.Errorf("deletes = %d, want 1", fake.deletes)
		}
	})

	t.Run("store is consulted once", func(t *testing.T) {
		fake := seeded()
		c := NewController(fake, adminGuard(t))
		if _, err := c.EnsureCategory(ctx, "Starters", "leaf"); err != nil {
			t.Fatal(err)
		}
		if _, err := c.AddItem(ctx, CourseStarters, "Salad", "Crisp.", nil); err != nil {
			t.Fatal(err)
		}
		if fake.lists != 1 {
			t.Errorf("list calls = %d, want 1", fake.lists)
		}
	})
}
