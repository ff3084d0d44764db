// Package routes compiles a flat list of route files into a nested route
// manifest.
//
// Each file name encodes its place in the hierarchy:
//
//	routes/app.tsx                    -> id "app",                 path "app"
//	routes/app.projects.$id.tsx       -> id "app.projects.$id",    path ":id" (parent "app")
//	routes/_auth.login.tsx            -> id "_auth.login",         path "login" (parent "_auth")
//	routes/app_.settings.tsx          -> id "app_.settings",       path "app/settings" (parent "root")
//	routes/(lang).about.tsx           -> id "(lang).about",        path "lang?/about"
//	routes/files.$.tsx                -> id "files.$",             path "files/*"
//	routes/sitemap[.]xml.tsx          -> id "sitemap[.]xml",       path "sitemap.xml"
//
// ExtractIdentifiers turns file paths into unique route ids and
// BuildManifest resolves parents, relative paths and path collisions.
package routes
