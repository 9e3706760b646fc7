// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mobi

import (
	"encoding/xml"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"xml": escape,
}

// escape returns s escaped for use in XML text and attribute values.
func escape(s string) string {
	var b strings.Builder
	//nolint:errcheck // strings.Builder never returns an error.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const partitionHead = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns:idx="www.mobipocket.com" xmlns:mbp="www.mobipocket.com" xmlns:xlink="http://www.w3.org/1999/xlink">
  <body>
    <mbp:pagebreak/>
    <mbp:frameset>
      <mbp:slave-frame display="bottom" device="all" breadth="auto" leftmargin="0" rightmargin="0" bottommargin="0" topmargin="0">
        <div align="center" bgcolor="yellow">
          <a onclick="index_search()">Dictionary Search</a>
        </div>
      </mbp:slave-frame>
      <mbp:pagebreak/>
`

const partitionEnd = `    </mbp:frameset>
  </body>
</html>
`

// entryTemplate renders one entryView. Definition markup is written as is.
var entryTemplate = template.Must(template.New("entry").Funcs(funcs).Parse(
	`      <idx:entry name="word" scriptable="yes">
        <h2>
          <idx:orth>{{xml .Term}}{{if .Forms}}
            <idx:infl>{{range .Forms}}
              <idx:iform value="{{xml .}}" exact="yes"/>{{end}}
            </idx:infl>{{end}}
          </idx:orth><idx:key key="{{xml .Key}}"/>
        </h2>
        {{.Definition}}
        <br/><br/>
        <b>Sursa: <i>{{xml .Source}}</i></b>
      </idx:entry>
      <mbp:pagebreak/>
`))

var opfTemplate = template.Must(template.New("opf").Funcs(funcs).Parse(
	`<?xml version="1.0" encoding="utf-8"?>
<package unique-identifier="uid">
  <metadata>
    <dc-metadata xmlns:dc="http://purl.org/metadata/dublin_core" xmlns:oebpackage="http://openebook.org/namespaces/oeb-package/1.0/">
      <dc:Identifier id="uid">{{xml .Identifier}}</dc:Identifier>
      <dc:Title>{{xml .Title}}</dc:Title>
      <dc:Language>{{xml .Language}}</dc:Language>
      <dc:Date>{{.Date}}</dc:Date>
    </dc-metadata>
    <x-metadata>
      <output encoding="utf-8" flatten-dynamic-dir="yes"/>
      <DictionaryInLanguage>{{xml .Language}}</DictionaryInLanguage>
      <DictionaryOutLanguage>{{xml .Language}}</DictionaryOutLanguage>
      <EmbeddedCover>{{.Cover}}</EmbeddedCover>
    </x-metadata>
  </metadata>
  <manifest>
    <item id="cover" href="{{.Cover}}" media-type="image/jpeg"/>
    <item id="toc" href="{{xml .TOC}}" media-type="application/xhtml+xml"/>
{{range .Parts}}    <item id="{{.ID}}" href="{{xml .Href}}" media-type="application/xhtml+xml"/>
{{end}}  </manifest>
  <spine>
    <itemref idref="toc"/>
{{range .Parts}}    <itemref idref="{{.ID}}"/>
{{end}}  </spine>
  <guide>
    <reference type="toc" title="Table of Contents" href="{{xml .TOC}}"/>
    <reference type="search" title="Dictionary Search" onclick="index_search()"/>
  </guide>
</package>
`))

var tocTemplate = template.Must(template.New("toc").Funcs(funcs).Parse(
	`<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
  <head>
    <title>{{xml .Title}}</title>
  </head>
  <body>
    <h1>{{xml .Title}}</h1>
    <ul>
{{range .Parts}}      <li><a href="{{xml .Href}}">{{xml .Key}}</a></li>
{{end}}    </ul>
  </body>
</html>
`))
