/*
Package ports defines the driven ports (interfaces) for the Placify wizard engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various storage backends, definition sources and
submission endpoints.

# Key Interfaces

  - DefinitionLoader: Responsible for loading wizard definitions (e.g., from YAML files or memory).
  - StateStore: Responsible for persisting and loading wizard Sessions.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - Gateway: Issues the single outbound submission of a completed wizard.
  - Publisher: Announces accepted submissions to interested systems.
*/
package ports
