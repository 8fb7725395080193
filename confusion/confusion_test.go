package confusion_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lgeval/confusion"
	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/smallgraph"
)

func sg(t *testing.T, s string) *smallgraph.SmallGraph {
	t.Helper()
	g, err := smallgraph.Parse(s)
	require.NoError(t, err)
	return g
}

func TestCounter(t *testing.T) {
	c := &confusion.Counter{}
	c.Incr("b.lg")
	c.Incr("a.lg")
	c.Incr("b.lg")
	c.Incr("")
	assert.Equal(t, 4, c.Count)
	assert.Equal(t, []string{"a.lg", "b.lg"}, c.UniqueFiles())

	sum := c.Add(&confusion.Counter{Count: 2, Files: []string{"c.lg"}})
	assert.Equal(t, 6, sum.Count)
	assert.Equal(t, []string{"a.lg", "b.lg", "c.lg"}, sum.UniqueFiles())
	assert.Equal(t, 4, c.Count)
}

func TestDict_IsomorphicKeysShareAnEntry(t *testing.T) {
	d := confusion.NewDict[int](metric.NewContext())
	a := sg(t, "2,1,x,2,y,1,1,2,R")
	renamed := sg(t, "2,q,y,p,x,1,p,q,R")
	flipped := sg(t, "2,1,x,2,y,1,2,1,R")

	d.Set(a, 1)
	assert.True(t, d.Contains(renamed))
	assert.False(t, d.Contains(flipped))
	assert.Equal(t, 1, d.Get(renamed, func() int { return 99 }))

	d.Set(renamed, 5)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 5, d.Entries()[0].Value)
	assert.Same(t, a, d.Entries()[0].Key)

	assert.Equal(t, 7, d.Get(flipped, func() int { return 7 }))
	assert.Equal(t, 2, d.Len())
}

func TestDict_WithoutKeyer(t *testing.T) {
	ctx := metric.Context{Node: metric.Intersect{}, Edge: metric.Intersect{}}
	d := confusion.NewDict[string](ctx)
	d.Set(sg(t, "1,1,x|X,0"), "first")
	assert.True(t, d.Contains(sg(t, "1,7,x,0")))
	assert.False(t, d.Contains(sg(t, "1,7,y,0")))
}

func TestMatrix(t *testing.T) {
	m := confusion.NewMatrix(metric.NewContext())
	target := sg(t, "2,1,x,2,y,1,1,2,Sup")
	asRight := sg(t, "2,1,x,2,y,1,1,2,Right")
	asSub := sg(t, "2,a,x,b,y,1,a,b,Sub")

	m.Incr(target, asRight, "f1.lg")
	m.Incr(sg(t, "2,s,y,r,x,1,r,s,Sup"), sg(t, "2,s,y,r,x,1,r,s,Right"), "f2.lg")
	m.Incr(target, asSub, "f3.lg")
	m.Incr(sg(t, "1,1,x,0"), sg(t, "1,1,X,0"), "f4.lg")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 4, m.ErrorCount())

	rows := m.Rows()
	require.Len(t, rows, 2)
	assert.Same(t, target, rows[0].Target)
	assert.Equal(t, 3, rows[0].Total.Count)
	require.Len(t, rows[0].Cells, 2)
	assert.Same(t, asRight, rows[0].Cells[0].Output)
	assert.Equal(t, []string{"f1.lg", "f2.lg"}, rows[0].Cells[0].Counter.UniqueFiles())
	assert.Equal(t, 1, rows[1].Total.Count)
}

func TestObjectMatrix(t *testing.T) {
	ctx := metric.NewContext()
	o := confusion.NewObjectMatrix(ctx)
	objA := sg(t, "1,Obj0,x,0")
	objB := sg(t, "2,Obj0,x,Obj1,y,1,Obj0,Obj1,R")

	o.Incr(objA, sg(t, "1,1,x,0"), sg(t, "1,1,y,0"), "a.lg")
	o.Incr(objB, sg(t, "2,1,x,2,y,1,1,2,R"), sg(t, "2,1,x,2,y,0"), "b.lg")
	o.Incr(sg(t, "2,Obj3,x,Obj4,y,1,Obj3,Obj4,R"), sg(t, "2,5,x,6,y,1,5,6,R"), sg(t, "2,5,x,6,y,0"), "c.lg")

	assert.Equal(t, 2, o.Len())
	assert.Equal(t, 3, o.ErrorCount())
	objs := o.Objects()
	require.Len(t, objs, 2)
	assert.Same(t, objB, objs[0].Object)
	assert.Equal(t, 2, objs[0].Total)
	assert.Equal(t, 1, objs[0].Matrix.Len())
}

func TestWriteReport(t *testing.T) {
	m := confusion.NewMatrix(metric.NewContext())
	target := sg(t, "2,1,x,2,y,1,1,2,Sup")
	m.Incr(target, sg(t, "2,1,x,2,y,1,1,2,Right"), "f1.lg")
	m.Incr(target, sg(t, "2,1,x,2,y,1,1,2,Right"), "f2.lg")
	m.Incr(target, sg(t, "2,1,x,2,y,1,1,2,Sub"), "f3.lg")
	m.Incr(sg(t, "1,1,x,0"), sg(t, "1,1,X,0"), "f4.lg")

	var b strings.Builder
	require.NoError(t, m.WriteReport(&b, 2, 2))
	assert.Equal(t,
		"# 2 incorrect targets, 4 errors\n"+
			"T1\t3 errors\t2,1,x,2,y,1,1,2,Sup\n"+
			"\t2\t2,1,x,2,y,1,1,2,Right\tf1.lg f2.lg\n"+
			"\t1\tother\tf3.lg\n"+
			"# additional errors: 1\tf4.lg\n",
		b.String())

	o := confusion.NewObjectMatrix(metric.NewContext())
	o.Incr(sg(t, "1,Obj0,x,0"), sg(t, "1,1,x,0"), sg(t, "1,1,y,0"), "a.lg")
	b.Reset()
	require.NoError(t, o.WriteReport(&b, 1))
	assert.Equal(t,
		"# 1 incorrect object targets, 1 errors\n"+
			"O1\t1 errors\t1,Obj0,x,0\n"+
			"\tT1\t1 errors\t1,1,x,0\n"+
			"\t\t1\t1,1,y,0\ta.lg\n"+
			"# additional errors: 0\n",
		b.String())
}
