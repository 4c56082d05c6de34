package config

// Schema is the JSON schema the loaded properties are checked against
const Schema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "sftp.host": {
            "type": "string",
            "minLength": 1,
            "description": "SFTP server hostname"
        },
        "sftp.port": {
            "type": "string",
            "pattern": "^[0-9]{1,5}$"
        },
        "sftp.username": {
            "type": "string",
            "minLength": 1
        },
        "sftp.KeyFilePath": {
            "type": "string"
        },
        "sftp.KeyFile": {
            "type": "string",
            "minLength": 1
        },
        "sftp.localPath": {
            "type": "string"
        },
        "sftp.TargetFilePath": {
            "type": "string"
        },
        "sftp.TargetFile": {
            "type": "string",
            "minLength": 1
        },
        "sftp.hostKeyPolicy": {
            "type": "string",
            "enum": ["trust-all", "known-hosts"]
        },
        "sftp.timeout": {
            "type": "string",
            "pattern": "^([0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h))+$|^0$"
        },
        "downloader.mode": {
            "type": "string",
            "enum": ["sftp", "script"]
        },
        "log.level": {
            "type": "string",
            "enum": ["debug", "info", "warn", "error"]
        },
        "log.format": {
            "type": "string",
            "enum": ["json", "console"]
        }
    },
    "required": ["sftp.host", "sftp.username", "sftp.KeyFile", "sftp.TargetFile"],
    "if": {
        "properties": { "downloader.mode": { "const": "script" } },
        "required": ["downloader.mode"]
    },
    "then": {
        "required": ["python.scryptFile"]
    }
}`
