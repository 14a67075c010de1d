package main_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/fwojciec/wetclean"
	main "github.com/fwojciec/wetclean/cmd/wetclean"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

var articleLines = []string{
	"The river town wakes slowly while fishermen check their nets along the quiet bank.",
	"Children walk to school past the bakery where warm bread cools in the open window.",
	"Most shops open late in winter because few travelers cross the mountain pass then.",
	"An old stone bridge links the market square with the orchards on the eastern hill.",
	"Farmers bring apples, pears, and honey to sell every Saturday before noon arrives.",
	"In the evening families gather near the harbor to watch boats return with the catch.",
	"Local historians say the first houses were built by traders more than five centuries ago.",
	"Visitors often remark that time seems to move differently in such a patient place.",
}

var variantWords = []string{"river", "harbor", "market", "stone", "winter", "orchard"}

// variant returns a distinct article that passes both classifier stages.
func variant(i int) string {
	lines := append([]string(nil), articleLines...)
	lines[0] = strings.Replace(lines[0], "river", variantWords[i%len(variantWords)], 1)
	return strings.Join(lines, "\n")
}

// writeLexicon writes a word list covering every article word.
func writeLexicon(t *testing.T) string {
	t.Helper()
	p := wetclean.NewPatterns()
	words := p.Words(strings.ToLower(strings.Join(articleLines, "\n")), -1)
	words = append(words, variantWords...)
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	return path
}

// writeArchive writes a gzip WET file with one conversion record per body.
func writeArchive(t *testing.T, path string, bodies ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	for i, body := range bodies {
		zw := gzip.NewWriter(f)
		_, err := io.WriteString(zw, "WARC/1.0\r\nWARC-Type: conversion\r\n"+
			"WARC-Target-URI: https://example.com/"+strconv.Itoa(i)+"\r\n"+
			"Content-Type: text/plain\r\n"+
			"Content-Length: "+strconv.Itoa(len(body))+"\r\n\r\n"+body+"\r\n\r\n")
		require.NoError(t, err)
		require.NoError(t, zw.Close())
	}
}

// writeResponseArchive writes a gzip WARC file with one HTML response record
// per article, each line of the article in its own paragraph.
func writeResponseArchive(t *testing.T, path string, articles ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	for i, article := range articles {
		var page strings.Builder
		page.WriteString("<html><head><title>Page</title></head><body>")
		for _, line := range strings.Split(article, "\n") {
			page.WriteString("<p>" + line + "</p>")
		}
		page.WriteString("</body></html>")

		payload := "HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=utf-8\r\n" +
			"Content-Length: " + strconv.Itoa(page.Len()) + "\r\n\r\n" + page.String()

		zw := gzip.NewWriter(f)
		_, err := io.WriteString(zw, "WARC/1.0\r\nWARC-Type: response\r\n"+
			"WARC-Target-URI: https://example.com/page/"+strconv.Itoa(i)+"\r\n"+
			"Content-Type: application/http; msgtype=response\r\n"+
			"Content-Length: "+strconv.Itoa(len(payload))+"\r\n\r\n"+payload+"\r\n\r\n")
		require.NoError(t, err)
		require.NoError(t, zw.Close())
	}
}

// inputDir returns a directory with two archives sharing one article.
func inputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeArchive(t, filepath.Join(dir, "one.warc.wet.gz"), variant(0), "tinytext", variant(1))
	writeArchive(t, filepath.Join(dir, "two.warc.wet.gz"), variant(1), variant(2))
	return dir
}

// docs splits a corpus into its documents.
func docs(corpus string) []string {
	var out []string
	for _, d := range strings.Split(corpus, wetclean.DocumentDelimiter) {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// run executes the CLI and returns its output.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = main.NewMain().Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}
