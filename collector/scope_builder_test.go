package collector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-treesitter-name-extractor/collector"
	"github.com/CodMac/go-treesitter-name-extractor/model"
)

func TestScopeBuilder_RootWithLeaf(t *testing.T) {
	b := collector.NewScopeBuilder("src/AClass.java")

	b.Add(model.NewEntity(model.Class, "AClass"))
	b.Add(model.NewTypedEntity(model.Field, "aField", "int"))

	top, ok := b.CurrentContainer()
	require.True(t, ok)
	assert.Equal(t, "AClass", top.Name)

	_, err := b.MoveToParent()
	require.NoError(t, err)

	raw, err := b.Finish()
	require.NoError(t, err)
	require.Len(t, raw.TopLevelEntities, 1)

	root := raw.TopLevelEntities[0]
	require.Len(t, root.Children(), 1)
	assert.Equal(t, "aField", root.Children()[0].Name)
	assert.Equal(t, model.Field, root.Children()[0].Kind)
}

func TestScopeBuilder_NestedContainers(t *testing.T) {
	b := collector.NewScopeBuilder("AClass.java")

	class := model.NewEntity(model.Class, "AClass")
	b.AddAsContainer(class)
	assert.Equal(t, 2, b.Depth(), "root container is pushed by Add and again by AddAsContainer")

	b.Add(model.NewTypedEntity(model.Field, "aField", "String"))
	b.AddAsContainer(model.NewEntity(model.Constructor, "aConstructor"))
	b.AddAsContainer(model.NewEntity(model.Method, "aMethod"))

	top, ok := b.CurrentContainer()
	require.True(t, ok)
	assert.Equal(t, model.Method, top.Kind)

	// 查看栈顶不改变栈
	again, _ := b.CurrentContainer()
	assert.Same(t, top, again)

	require.Len(t, class.Children(), 2)
	assert.Equal(t, "aField", class.Children()[0].Name)
	assert.Equal(t, "aConstructor", class.Children()[1].Name)

	parent, err := b.MoveToParent()
	require.NoError(t, err)
	assert.Equal(t, model.Constructor, parent.Kind)

	parent, err = b.MoveToParent()
	require.NoError(t, err)
	assert.Equal(t, model.Class, parent.Kind)

	parent, err = b.MoveToParent()
	require.NoError(t, err)
	assert.Same(t, class, parent)

	parent, err = b.MoveToParent()
	require.NoError(t, err)
	assert.Nil(t, parent)

	_, err = b.Finish()
	require.NoError(t, err)
}

func TestScopeBuilder_MoveToParentOnEmptyStack(t *testing.T) {
	b := collector.NewScopeBuilder("Foo.java")

	_, err := b.MoveToParent()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmptyScopeStack)
	assert.True(t, model.IsProtocolViolation(err))
}

func TestScopeBuilder_ExtraMoveToParentIsProtocolViolation(t *testing.T) {
	b := collector.NewScopeBuilder("Foo.java")
	b.AddAsContainer(model.NewEntity(model.Class, "Foo"))

	_, err := b.MoveToParent()
	require.NoError(t, err)
	_, err = b.MoveToParent()
	require.NoError(t, err)

	_, err = b.MoveToParent()
	assert.ErrorIs(t, err, model.ErrEmptyScopeStack)
}

func TestScopeBuilder_FinishWithOpenScope(t *testing.T) {
	b := collector.NewScopeBuilder("Foo.java")
	b.AddAsContainer(model.NewEntity(model.Class, "Foo"))
	_, err := b.MoveToParent()
	require.NoError(t, err)

	raw, err := b.Finish()
	assert.Nil(t, raw)
	assert.ErrorIs(t, err, model.ErrUnclosedScope)
	assert.True(t, model.IsProtocolViolation(err))
}

func TestScopeBuilder_FinishTwice(t *testing.T) {
	b := collector.NewScopeBuilder("Foo.java")
	_, err := b.Finish()
	require.NoError(t, err)

	_, err = b.Finish()
	assert.ErrorIs(t, err, model.ErrBuilderFinished)
	_, err = b.MoveToParent()
	assert.ErrorIs(t, err, model.ErrBuilderFinished)
}

func TestScopeBuilder_EventsAfterFinishAreRejected(t *testing.T) {
	b := collector.NewScopeBuilder("Foo.java")
	require.NoError(t, b.PackageName("a.b"))
	require.NoError(t, b.Add(model.NewEntity(model.Class, "Foo")))
	_, err := b.MoveToParent()
	require.NoError(t, err)

	raw, err := b.Finish()
	require.NoError(t, err)

	assert.ErrorIs(t, b.Add(model.NewEntity(model.Class, "Late")), model.ErrBuilderFinished)
	assert.ErrorIs(t, b.AddAsContainer(model.NewEntity(model.Class, "Later")), model.ErrBuilderFinished)
	assert.ErrorIs(t, b.PackageName("x.y"), model.ErrBuilderFinished)

	require.Len(t, raw.TopLevelEntities, 1)
	assert.Equal(t, "Foo", raw.TopLevelEntities[0].Name)
	assert.Equal(t, "a.b", raw.PackageName)
	assert.Equal(t, 0, b.Depth())
}

func TestScopeBuilder_SiblingRoots(t *testing.T) {
	b := collector.NewScopeBuilder("Two.java")

	for _, name := range []string{"First", "Second"} {
		b.AddAsContainer(model.NewEntity(model.Class, name))
		b.Add(model.NewEntity(model.Field, "f"+name))
		_, err := b.MoveToParent()
		require.NoError(t, err)
		_, err = b.MoveToParent()
		require.NoError(t, err)
	}

	raw, err := b.Finish()
	require.NoError(t, err)
	require.Len(t, raw.TopLevelEntities, 2)
	assert.Equal(t, "First", raw.TopLevelEntities[0].Name)
	assert.Equal(t, "Second", raw.TopLevelEntities[1].Name)
	assert.Len(t, raw.TopLevelEntities[1].Children(), 1)
}

func TestScopeBuilder_PackageNameLastWriteWins(t *testing.T) {
	b := collector.NewScopeBuilder("a/b/c/Foo.java")
	b.PackageName("x.y")
	b.PackageName("a.b.c")

	raw, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", raw.PackageName)
	assert.Equal(t, model.RawFileIdentity{SourcePath: "a/b/c/Foo.java", PackageName: "a.b.c"}, raw.Identity())
}

func TestScopeBuilder_DefaultPackageIsEmpty(t *testing.T) {
	raw, err := collector.NewScopeBuilder("Foo.java").Finish()
	require.NoError(t, err)
	assert.Equal(t, "", raw.PackageName)
}

func TestSimpleFileName(t *testing.T) {
	assert.Equal(t, "Foo.java", collector.SimpleFileName("src/main/java/a/b/c/Foo.java"))
	assert.Equal(t, "Foo.java", collector.SimpleFileName("Foo.java"))
	assert.Equal(t, "", collector.SimpleFileName("dir/"))
	assert.Equal(t, "Foo.java", collector.NewScopeBuilder("x/Foo.java").FileName())
}
