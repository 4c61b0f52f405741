package importparse_test

import (
	"testing"

	"github.com/arcsight-ai/arcsight/internal/domain/importparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ESModuleDefault(t *testing.T) {
	specs := importparse.Extract(`import Foo from './foo';`)
	require.Len(t, specs, 1)
	assert.Equal(t, "./foo", specs[0].Text)
	assert.False(t, specs[0].TypeOnly)
	assert.Equal(t, 1, specs[0].Line)
}

func TestExtract_MultilineImportClause(t *testing.T) {
	src := "import {\n  Foo, Bar } from\n  '../bar';\n"
	specs := importparse.Extract(src)
	require.Len(t, specs, 1)
	assert.Equal(t, "../bar", specs[0].Text)
}

func TestExtract_SideEffectImport(t *testing.T) {
	specs := importparse.Extract(`import './setup';`)
	require.Len(t, specs, 1)
	assert.Equal(t, "./setup", specs[0].Text)
}

func TestExtract_CommonJSRequire(t *testing.T) {
	specs := importparse.Extract(`const x = require('./x');`)
	require.Len(t, specs, 1)
	assert.Equal(t, "./x", specs[0].Text)
}

func TestExtract_TypeOnlyImportIgnored(t *testing.T) {
	specs := importparse.Extract(`import type { Foo } from './types';`)
	require.Len(t, specs, 1)
	assert.True(t, specs[0].TypeOnly)
}

func TestExtract_BracedTypeOnlyImport(t *testing.T) {
	specs := importparse.Extract(`import { type Foo } from './types';`)
	require.Len(t, specs, 1)
	assert.True(t, specs[0].TypeOnly)
}

func TestExtract_DynamicImportIgnored(t *testing.T) {
	specs := importparse.Extract(`const mod = import('./lazy');`)
	assert.Empty(t, specs)
}

func TestExtract_TemplateLiteralRequireIgnored(t *testing.T) {
	specs := importparse.Extract("const mod = require(`./${name}`);")
	assert.Empty(t, specs)
}

func TestExtract_CommentsStripped(t *testing.T) {
	src := "// import './ghost';\nimport './real';\n/* import './also-ghost'; */\n"
	specs := importparse.Extract(src)
	require.Len(t, specs, 1)
	assert.Equal(t, "./real", specs[0].Text)
}

func TestExtract_URLInsideStringNotTreatedAsComment(t *testing.T) {
	src := "const url = 'https://example.com';\nimport './real';\n"
	specs := importparse.Extract(src)
	require.Len(t, specs, 1)
	assert.Equal(t, "./real", specs[0].Text)
}

func TestExtract_SoftCapStopsAt500(t *testing.T) {
	src := ""
	for i := 0; i < 600; i++ {
		src += "import './m';\n"
	}
	specs := importparse.Extract(src)
	assert.Len(t, specs, importparse.MaxMatchesPerFile)
}

func TestExtract_BareExternalSpecifierStillExtracted(t *testing.T) {
	specs := importparse.Extract(`import React from 'react';`)
	require.Len(t, specs, 1)
	assert.Equal(t, "react", specs[0].Text)
}
