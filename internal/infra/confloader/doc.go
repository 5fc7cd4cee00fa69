// Package confloader assembles one configuration mapping from layered
// sources.
//
// Sources, from lowest to highest precedence:
//
//  1. A configuration file: the explicit path given to the loader, else the
//     path held by a configured environment variable, else a default path.
//  2. Environment variables of the form PREFIX__SECTION__KEY.
//  3. Values supplied explicitly by the caller.
//
// Layers are deep-merged. An explicitly named file that does not exist is
// an error; a missing default file is treated as an empty layer.
//
// The package also provides a file Watcher and a Reloader that resolves
// again whenever a watched configuration file changes.
package confloader
