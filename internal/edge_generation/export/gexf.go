// Package export writes finished graphs to disk in the formats the frontend
// consumes: GEXF (with a gzip sibling) and plain JSON.
package export

import (
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
)

type gexfFile struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Meta    gexfMeta  `xml:"meta"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfMeta struct {
	LastModified string `xml:"lastmodifieddate,attr"`
	Creator      string `xml:"creator"`
}

type gexfGraph struct {
	Mode            string          `xml:"mode,attr"`
	DefaultEdgeType string          `xml:"defaultedgetype,attr"`
	AttrDecls       []gexfAttrDecls `xml:"attributes"`
	Nodes           []gexfNode      `xml:"nodes>node"`
	Edges           []gexfEdge      `xml:"edges>edge"`
}

type gexfAttrDecls struct {
	Class string     `xml:"class,attr"`
	Attrs []gexfAttr `xml:"attribute"`
}

type gexfAttr struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNode struct {
	ID        string          `xml:"id,attr"`
	Label     string          `xml:"label,attr"`
	AttValues []gexfAttrValue `xml:"attvalues>attvalue"`
}

type gexfEdge struct {
	ID        string          `xml:"id,attr"`
	Source    string          `xml:"source,attr"`
	Target    string          `xml:"target,attr"`
	Weight    string          `xml:"weight,attr,omitempty"`
	AttValues []gexfAttrValue `xml:"attvalues>attvalue"`
}

type gexfAttrValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

// WriteGEXF serializes the graph as GEXF 1.2 and writes a gzip-compressed
// sibling next to it. Every attribute value is scalar by the time a graph
// reaches this package.
func WriteGEXF(g *domain.Graph, path string) error {
	doc := buildGEXF(g)

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal gexf: %w", err)
	}
	payload := append([]byte(xml.Header), out...)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("write gexf: %w", err)
	}
	return gzipSibling(path)
}

func buildGEXF(g *domain.Graph) gexfFile {
	nodeKeys, edgeKeys := collectAttrKeys(g)

	nodeDecl := gexfAttrDecls{Class: "node"}
	nodeAttrID := map[string]string{}
	for i, k := range nodeKeys {
		id := fmt.Sprintf("n%d", i)
		nodeAttrID[k] = id
		nodeDecl.Attrs = append(nodeDecl.Attrs, gexfAttr{ID: id, Title: k, Type: "string"})
	}

	edgeDecl := gexfAttrDecls{Class: "edge"}
	edgeAttrID := map[string]string{}
	for i, k := range edgeKeys {
		id := fmt.Sprintf("e%d", i)
		edgeAttrID[k] = id
		edgeDecl.Attrs = append(edgeDecl.Attrs, gexfAttr{ID: id, Title: k, Type: attrType(g, k)})
	}

	doc := gexfFile{
		XMLNS:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Meta: gexfMeta{
			LastModified: time.Now().UTC().Format("2006-01-02"),
			Creator:      "deepgit-backend",
		},
		Graph: gexfGraph{
			Mode:            "static",
			DefaultEdgeType: "undirected",
			AttrDecls:       []gexfAttrDecls{nodeDecl, edgeDecl},
		},
	}

	for _, n := range g.SortedNodes() {
		gn := gexfNode{ID: n.ID, Label: n.ID}
		gn.AttValues = appendAttValue(gn.AttValues, nodeAttrID, "topics", n.Topics)
		gn.AttValues = appendAttValue(gn.AttValues, nodeAttrID, "contributors", n.Contributors)
		gn.AttValues = appendAttValue(gn.AttValues, nodeAttrID, "stargazers", n.Stargazers)
		for _, k := range sortedKeys(n.Attrs) {
			gn.AttValues = appendAttValue(gn.AttValues, nodeAttrID, k, n.Attrs[k])
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gn)
	}

	for i, e := range g.Edges {
		ge := gexfEdge{ID: fmt.Sprintf("%d", i), Source: e.Source, Target: e.Target}
		if w, ok := e.Attrs[domain.AttrWeight]; ok {
			ge.Weight = scalarString(w)
		}
		for _, k := range sortedKeys(e.Attrs) {
			ge.AttValues = appendAttValue(ge.AttValues, edgeAttrID, k, e.Attrs[k])
		}
		doc.Graph.Edges = append(doc.Graph.Edges, ge)
	}
	return doc
}

func collectAttrKeys(g *domain.Graph) (nodeKeys, edgeKeys []string) {
	nodeSet := map[string]bool{"topics": true, "contributors": true, "stargazers": true}
	for _, n := range g.Nodes {
		for k := range n.Attrs {
			nodeSet[k] = true
		}
	}
	edgeSet := map[string]bool{}
	for _, e := range g.Edges {
		for k := range e.Attrs {
			edgeSet[k] = true
		}
	}
	for k := range nodeSet {
		nodeKeys = append(nodeKeys, k)
	}
	for k := range edgeSet {
		edgeKeys = append(edgeKeys, k)
	}
	sort.Strings(nodeKeys)
	sort.Strings(edgeKeys)
	return nodeKeys, edgeKeys
}

func attrType(g *domain.Graph, key string) string {
	for _, e := range g.Edges {
		switch e.Attrs[key].(type) {
		case int, int64:
			return "integer"
		case float64:
			return "double"
		case bool:
			return "boolean"
		case string:
			return "string"
		}
	}
	return "string"
}

func appendAttValue(vals []gexfAttrValue, ids map[string]string, key string, v any) []gexfAttrValue {
	id, ok := ids[key]
	if !ok {
		return vals
	}
	return append(vals, gexfAttrValue{For: id, Value: scalarString(v)})
}

func scalarString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func sortedKeys(attrs domain.Attrs) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func gzipSibling(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open gexf for compression: %w", err)
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return fmt.Errorf("create gzip sibling: %w", err)
	}
	defer out.Close()

	zw, err := gzip.NewWriterLevel(out, 6)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		return fmt.Errorf("compress gexf: %w", err)
	}
	return zw.Close()
}

// UniqueFilename derives a stable-prefix, collision-free GEXF filename for a
// topic set: a short digest of the sorted topics plus a timestamp.
func UniqueFilename(topics []string) string {
	sorted := append([]string(nil), topics...)
	sort.Strings(sorted)
	sum := md5.Sum([]byte(strings.Join(sorted, "|")))
	return fmt.Sprintf("topics_%s_%s.gexf",
		hex.EncodeToString(sum[:])[:12],
		time.Now().Format("20060102_150405"))
}
