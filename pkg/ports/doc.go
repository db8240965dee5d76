/*
Package ports defines the driven ports (interfaces) of the exporter.

These interfaces decouple conversion from storage, so the same converter
writes to memory, to Redis, to disk or nowhere at all.

# Key Interfaces

  - PathStore: persists the paths generated by an export run.

RunPathStoreContract is a reusable suite every PathStore adapter runs in its
own tests.
*/
package ports
